package service

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNotAbsoluteURL возвращается для адресов без схемы или хоста
	ErrNotAbsoluteURL = errors.New("URL must have scheme and host")
	// ErrInvalidEncoding возвращается для адресов, не являющихся корректной UTF-8 строкой
	ErrInvalidEncoding = errors.New("URL is not valid UTF-8")
	// ErrInvalidPort возвращается для порта вне диапазона 0-65535
	ErrInvalidPort = errors.New("URL port out of range")
)

// defaultPorts - порты по умолчанию для специальных схем
var defaultPorts = map[string]uint64{
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
	"ftp":   21,
}

// Canonicalize разбирает абсолютный URL и возвращает его каноническую форму:
// схема и хост в нижнем регистре, порт записан без ведущих нулей,
// порт по умолчанию убран, сегменты "." и ".." удалены из пути,
// пустой путь специальной схемы заменён на "/".
func Canonicalize(rawURL string) (string, error) {
	if !utf8.ValidString(rawURL) {
		return "", ErrInvalidEncoding
	}

	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrNotAbsoluteURL
	}

	u.Scheme = strings.ToLower(u.Scheme)
	defaultPort, special := defaultPorts[u.Scheme]

	host := strings.ToLower(u.Hostname())
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if p := u.Port(); p != "" {
		port, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return "", ErrInvalidPort
		}
		if !special || port != defaultPort {
			host += ":" + strconv.FormatUint(port, 10)
		}
	}
	u.Host = host

	if u.Path != "" {
		query, fragment, rawFragment := u.RawQuery, u.Fragment, u.RawFragment
		u = u.ResolveReference(&url.URL{})
		u.RawQuery, u.Fragment, u.RawFragment = query, fragment, rawFragment
	}
	if special && u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}

	return u.String(), nil
}
