package utils

import (
	"os"
	"strconv"
	"strings"
)

// GetEnv gets an environment variable, falling back to the .env file.
func GetEnv(key string) string {
	v, _ := LookupEnv(key)
	return v
}

func GetBoolEnv(key string) bool {
	v, _ := strconv.ParseBool(GetEnv(key))
	return v
}

func GetIntEnv(key string) int64 {
	v, _ := strconv.ParseInt(GetEnv(key), 10, 64)
	return v
}

// LookupEnv looks up key in the process environment first and in the local
// .env file second. Keys are case-insensitive, stored upper-case.
func LookupEnv(key string) (value string, found bool) {
	key = strings.ToUpper(key)
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	data, err := os.ReadFile(".env")
	if err != nil {
		return "", false
	}
	return scanEnvLines(string(data), key)
}

// LoadEnv loads .env (or .env.<env>) into the process environment without
// overriding variables that are already set.
func LoadEnv(env string) error {
	name := ".env"
	if env != "" {
		name = ".env." + env
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		k, vv, ok := splitEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(k); !exists {
			os.Setenv(k, vv)
		}
	}
	return nil
}

func scanEnvLines(data, key string) (string, bool) {
	for _, line := range strings.Split(data, "\n") {
		k, vv, ok := splitEnvLine(line)
		if !ok {
			continue
		}
		if k == key {
			return vv, true
		}
	}
	return "", false
}

func splitEnvLine(line string) (key, value string, ok bool) {
	v := strings.TrimSpace(line)
	if v == "" || v[0] == '#' || !strings.Contains(v, "=") {
		return "", "", false
	}
	vs := strings.SplitN(v, "=", 2)
	return strings.ToUpper(strings.TrimSpace(vs[0])), strings.TrimSpace(vs[1]), true
}
