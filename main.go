package main

import (
	"context"
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"threadwell-api/api"
	"threadwell-api/board"
	"threadwell-api/storage"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	store, err := openStore()
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	if redisConn := os.Getenv("REDIS_CONNECTION_STRING"); redisConn != "" {
		ttl := time.Minute
		if v := os.Getenv("SNAPSHOT_CACHE_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				log.Fatalf("invalid SNAPSHOT_CACHE_TTL: %v", err)
			}
			ttl = d
		}
		store = storage.NewCache(store, redisClient(redisConn), ttl)
	}

	svc := board.NewService(store)

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	logger := log.New()
	api.Register(e, svc, logger)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("FUNCTIONS_CUSTOMHANDLER_PORT"); ok {
		listenAddr = ":" + val
	}

	err = e.Start(listenAddr)
	if cerr := svc.Close(); cerr != nil {
		log.Errorf("close storage: %v", cerr)
	}
	log.Fatalf("server: %v", err)
}

// openStore selects the snapshot backend: Azure Table Storage when the
// connection string is configured, a local SQLite database otherwise.
func openStore() (board.Store, error) {
	connStr := os.Getenv("STORAGE_CONNECTION_STRING")
	if connStr != "" {
		tableName := os.Getenv("BOARD_TABLE")
		if tableName == "" {
			log.Fatal("missing BOARD_TABLE for table storage backend")
		}
		ts, err := storage.NewTableStore(connStr, tableName)
		if err != nil {
			return nil, err
		}
		if err := ts.EnsureTable(context.Background()); err != nil {
			return nil, err
		}
		return ts, nil
	}

	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "db/dev.db.sqlite"
	}
	return storage.NewSQLiteStore(path)
}

func redisClient(redisConn string) *redis.Client {
	opts, err := redis.ParseURL(redisConn)
	if err != nil {
		parts := strings.Split(redisConn, ",")
		opts = &redis.Options{Addr: parts[0]}
		for _, p := range parts[1:] {
			kv := strings.SplitN(p, "=", 2)
			if len(kv) != 2 {
				continue
			}
			switch strings.ToLower(kv[0]) {
			case "password":
				opts.Password = kv[1]
			case "ssl":
				if strings.ToLower(kv[1]) == "true" {
					opts.TLSConfig = &tls.Config{}
				}
			}
		}
	}
	return redis.NewClient(opts)
}
