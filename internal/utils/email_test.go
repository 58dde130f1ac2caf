package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractAddress(t *testing.T) {
	require.Equal(t, "jane@client.com", ExtractAddress("Jane Doe <jane@client.com>"))
	require.Equal(t, "jane@client.com", ExtractAddress("jane@client.com"))
	require.Equal(t, "jane@client.com", ExtractAddress("  jane@client.com  "))
	require.Equal(t, "jane@client.com", ExtractAddress("\"Doe, Jane\" <jane@client.com>"))
}

func TestExtractDomainFromEmail(t *testing.T) {
	require.Equal(t, "client.com", ExtractDomainFromEmail("jane@client.com"))
	require.Equal(t, "client.com", ExtractDomainFromEmail("Jane <jane@CLIENT.com>"))
	require.Equal(t, "", ExtractDomainFromEmail("not-an-address"))
	require.Equal(t, "", ExtractDomainFromEmail(""))
}

func TestNormalizeSubject(t *testing.T) {
	require.Equal(t, "Invoice question", NormalizeSubject("Re: Invoice question"))
	require.Equal(t, "FWD: Invoice question", NormalizeSubject("RE: FWD: Invoice question"))
	require.Equal(t, "Invoice question", NormalizeSubject("Invoice question"))
}

func TestReplySubject(t *testing.T) {
	require.Equal(t, "Re: Invoice question", ReplySubject("Invoice question"))
	require.Equal(t, "Re: Invoice question", ReplySubject("Re: Invoice question"))
	require.Equal(t, "RE: Invoice question", ReplySubject("RE: Invoice question"))
}
