package cron_config

type Config struct {
	// Heartbeat check, every minute
	CronScheduleHeartbeat string `env:"CRON_SCHEDULE_HEARTBEAT" envDefault:"0 * * * * *"`
	// Stale lead audit, hourly
	CronScheduleStaleLeadAudit string `env:"CRON_SCHEDULE_STALE_LEAD_AUDIT" envDefault:"0 0 * * * *"`
}
