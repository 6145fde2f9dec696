package shared

import (
	"crypto/tls"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/valyala/fasthttp"
)

const outboundTimeout = 10 * time.Second

func HTTPClient() *fasthttp.Client {
	client := &fasthttp.Client{
		ReadTimeout:  outboundTimeout,
		WriteTimeout: outboundTimeout,
	}

	if ignoreSSL := os.Getenv("IGNORE_SSL_CERTS"); strings.ToLower(ignoreSSL) == "true" {
		log.Warn("SSL certificate verification disabled for outbound calls")
		client.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return client
}

// PostJSON issues one JSON POST and returns a copy of the response body.
// Any status other than 200 is an error.
func PostJSON(client *fasthttp.Client, url string, body []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := client.DoTimeout(req, resp, outboundTimeout); err != nil {
		return nil, err
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", code, url)
	}

	return append([]byte(nil), resp.Body()...), nil
}
