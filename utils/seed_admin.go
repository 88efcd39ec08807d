package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/princinho/parcelly/models"
	"github.com/princinho/parcelly/repository"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// SeedAdminUser makes sure a user with the given email exists and, when it
// is created here, carries the Admin role. Existing users are left as is.
func SeedAdminUser(ctx context.Context, users repository.UserRepository, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		zerolog.Ctx(ctx).Debug().Msg("ADMIN_EMAIL not set, skipping admin seed")
		return nil
	}

	created, err := users.InsertIfAbsent(ctx, email, bson.M{
		models.UserFieldRole: string(models.RoleAdmin),
	})
	if err != nil {
		return fmt.Errorf("seed admin upsert failed: %w", err)
	}

	if created {
		zerolog.Ctx(ctx).Info().Str("email", email).Msg("Admin user seeded")
	} else {
		zerolog.Ctx(ctx).Info().Str("email", email).Msg("Admin user already exists")
	}
	return nil
}
