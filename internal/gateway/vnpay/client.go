// Package vnpay implements payment URL building and return-callback
// verification against the VNPay merchant API.
package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Query parameter names defined by the gateway protocol.
const (
	ParamTxnRef       = "vnp_TxnRef"
	ParamResponseCode = "vnp_ResponseCode"
	ParamSecureHash   = "vnp_SecureHash"

	responseCodeSuccess = "00"
	version             = "2.1.0"
	currency            = "VND"
	locale              = "vn"
	dateLayout          = "20060102150405"
)

type Config struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
	OrderType  string
}

type Client struct {
	cfg Config
	now func() time.Time
}

func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, now: time.Now}
}

// BuildPayURL builds a signed redirect URL for one payment attempt. Amount is
// in VND; the gateway expects it multiplied by 100.
func (c *Client) BuildPayURL(amount int64, clientIP, txnRef, orderInfo string) (string, error) {
	if c.cfg.TmnCode == "" || c.cfg.HashSecret == "" {
		return "", fmt.Errorf("vnpay: merchant credentials are not configured")
	}
	if txnRef == "" {
		return "", fmt.Errorf("vnpay: empty transaction reference")
	}

	v := url.Values{}
	v.Set("vnp_Version", version)
	v.Set("vnp_Command", "pay")
	v.Set("vnp_TmnCode", c.cfg.TmnCode)
	v.Set("vnp_Amount", strconv.FormatInt(amount*100, 10))
	v.Set("vnp_CurrCode", currency)
	v.Set("vnp_Locale", locale)
	v.Set(ParamTxnRef, txnRef)
	v.Set("vnp_OrderInfo", orderInfo)
	v.Set("vnp_OrderType", c.cfg.OrderType)
	v.Set("vnp_ReturnUrl", c.cfg.ReturnURL)
	v.Set("vnp_IpAddr", clientIP)
	v.Set("vnp_CreateDate", c.now().Format(dateLayout))

	signed := v.Encode()
	hash := SignQuery(v, c.cfg.HashSecret)
	return c.cfg.BaseURL + "?" + signed + "&" + ParamSecureHash + "=" + hash, nil
}

// VerifyReturn recomputes the signature over the callback parameters and
// compares it with the delivered vnp_SecureHash.
func (c *Client) VerifyReturn(q url.Values) bool {
	given := q.Get(ParamSecureHash)
	if given == "" {
		return false
	}

	params := url.Values{}
	for k, vals := range q {
		if k == ParamSecureHash || k == "vnp_SecureHashType" {
			continue
		}
		for _, val := range vals {
			params.Add(k, val)
		}
	}

	want := SignQuery(params, c.cfg.HashSecret)
	return hmac.Equal([]byte(strings.ToLower(given)), []byte(want))
}

// TxnRef extracts the transaction reference from callback parameters.
func (c *Client) TxnRef(q url.Values) string {
	return q.Get(ParamTxnRef)
}

// Succeeded reports whether the gateway signaled a successful charge.
func (c *Client) Succeeded(q url.Values) bool {
	return q.Get(ParamResponseCode) == responseCodeSuccess
}

// SignQuery computes the lowercase hex HMAC-SHA512 over the sorted,
// URL-encoded parameters. Exported so tests can simulate gateway callbacks.
func SignQuery(v url.Values, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(v.Encode()))
	return hex.EncodeToString(mac.Sum(nil))
}
