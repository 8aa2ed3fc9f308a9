package config

import "os"

func Addr() string {
	addr, ok := os.LookupEnv("APP_ADDR")
	if !ok || addr == "" {
		return ":8080"
	}
	return addr
}
