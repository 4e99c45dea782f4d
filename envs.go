package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var DB_DRIVER string
var DB_DSN string
var BOT_TOKEN string
var OPS_CHAT_ID int64
var REDIS_ADDR string
var REDIS_PASSWORD string
var POLICY_FILE string
var LISTEN_ADDR string
var ALLOWED_ORIGIN string
var OPENTDB_URL string

func SetupEnvs() {
	if err := godotenv.Load("./.env"); err != nil && !os.IsNotExist(err) {
		panic("could not load env file: " + err.Error())
	}

	DB_DRIVER = envOr("DB_DRIVER", "mysql")
	DB_DSN = envOr("DB_DSN", os.Getenv("MYSQL_URI"))
	BOT_TOKEN = os.Getenv("BOT_TOKEN")
	REDIS_ADDR = os.Getenv("REDIS_ADDR")
	REDIS_PASSWORD = os.Getenv("REDIS_PASSWORD")
	POLICY_FILE = os.Getenv("POLICY_FILE")
	LISTEN_ADDR = envOr("LISTEN_ADDR", "127.0.0.1:9000")
	ALLOWED_ORIGIN = envOr("ALLOWED_ORIGIN", "http://localhost:3000")
	OPENTDB_URL = envOr("OPENTDB_URL", "https://opentdb.com")

	if BOT_TOKEN == "" {
		panic("BOT_TOKEN is required to verify init data")
	}
	if raw := os.Getenv("OPS_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			panic("OPS_CHAT_ID must be a telegram chat id")
		}
		OPS_CHAT_ID = id
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
