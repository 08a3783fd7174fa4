package utils

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"time"

	"github.com/mpapenbr/deepracer-toolkit-go/log"
)

// WaitForTCP dials addr until a connection succeeds or the timeout is reached.
func WaitForTCP(ctx context.Context, addr string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	start := time.Now()
	log.Debug("wait for tcp connection",
		log.String("addr", addr),
		log.String("timeout", timeout.String()))
	var d net.Dialer
	for {
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err == nil {
			conn.Close()
			log.Debug("tcp connection successful",
				log.String("addr", addr),
				log.String("duration", time.Since(start).String()))
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s could not be reached after %v", addr, timeout)
		case <-time.After(200 * time.Millisecond):
		}
	}
}

var dbURLRegex = regexp.MustCompile(
	"^postgres(ql)?://(.*@)?(?P<addr>(?P<host>[^:/]*?)(:(?P<port>\\d+))?)(/.*)?$")

// ExtractFromDBURL returns host:port of a postgres connection url.
// The port defaults to 5432.
func ExtractFromDBURL(url string) string {
	param := resolveRegex(dbURLRegex, url)
	if len(param) == 0 {
		return ""
	}
	if port, ok := param["port"]; ok && port != "" {
		return param["addr"] // if port is found, the addr contains our wanted value
	}
	return fmt.Sprintf("%s:5432", param["addr"])
}

func resolveRegex(compRegEx *regexp.Regexp, url string) (paramsMap map[string]string) {
	match := compRegEx.FindStringSubmatch(url)
	if match == nil {
		return nil
	}
	paramsMap = make(map[string]string)
	for i, name := range compRegEx.SubexpNames() {
		if i > 0 && i < len(match) && name != "" {
			paramsMap[name] = match[i]
		}
	}
	return paramsMap
}
