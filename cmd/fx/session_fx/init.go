package session_fx

import (
	"context"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"
	"tripsure/internal/infra"
	"tripsure/internal/repositories"
)

var Module = fx.Provide(ProvideSessionStore)

// ProvideSessionStore selects the session store backend from environment
// variables. "postgres" (default) opens the gorm connection and closes it
// on shutdown; "memory" keeps everything process-local.
func ProvideSessionStore(lc fx.Lifecycle) repositories.SessionStoreInterface {
	backend := getEnvWithDefault("SESSION_STORE", "postgres")

	log.Printf("Initializing %s session store", backend)

	switch strings.ToLower(backend) {
	case "memory":
		return repositories.NewMemorySessionStore()
	default:
		db := infra.InitPostgresql()
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				infra.ClosePostgresql(db)
				return nil
			},
		})
		return repositories.NewSessionRepository(db)
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
