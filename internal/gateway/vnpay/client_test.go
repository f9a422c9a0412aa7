package vnpay

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return NewClient(Config{
		TmnCode:    "PETCARE1",
		HashSecret: "supersecrethash",
		BaseURL:    "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "http://localhost:8080/api/v1/payments/callback",
		OrderType:  "other",
	})
}

func TestBuildPayURL(t *testing.T) {
	c := testClient()

	raw, err := c.BuildPayURL(300000, "203.0.113.7", "abc123ref", "petcare payment abc123ref")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "30000000", q.Get("vnp_Amount"))
	assert.Equal(t, "abc123ref", q.Get(ParamTxnRef))
	assert.Equal(t, "203.0.113.7", q.Get("vnp_IpAddr"))
	assert.NotEmpty(t, q.Get(ParamSecureHash))
	assert.True(t, strings.HasPrefix(raw, c.cfg.BaseURL+"?"))

	// the URL we hand out must verify with our own return check
	assert.True(t, c.VerifyReturn(q))
}

func TestBuildPayURL_MissingCredentials(t *testing.T) {
	c := NewClient(Config{})
	_, err := c.BuildPayURL(1000, "127.0.0.1", "ref", "info")
	assert.Error(t, err)
}

func TestVerifyReturn_Tampered(t *testing.T) {
	c := testClient()

	raw, err := c.BuildPayURL(150000, "127.0.0.1", "ref42", "info")
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	q.Set("vnp_Amount", "100") // tamper
	assert.False(t, c.VerifyReturn(q))

	q = u.Query()
	q.Del(ParamSecureHash)
	assert.False(t, c.VerifyReturn(q))
}

func TestSucceeded(t *testing.T) {
	c := testClient()

	q := url.Values{}
	q.Set(ParamResponseCode, "00")
	assert.True(t, c.Succeeded(q))

	q.Set(ParamResponseCode, "24")
	assert.False(t, c.Succeeded(q))
}
