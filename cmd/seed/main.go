// Command seed provisions the SUPER_ADMIN account from SUPER_ADMIN_EMAIL
// and SUPER_ADMIN_PASS. It is safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jvoverseas/intake_backend/config"
	"github.com/jvoverseas/intake_backend/models"
	"github.com/jvoverseas/intake_backend/repositories"
	"github.com/jvoverseas/intake_backend/utils"
)

type adminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := config.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.DBName)
	config.SetupCollections(ctx, db)

	created, err := seedAdmin(ctx, repositories.NewUserRepository(db), cfg.SuperAdminEmail, cfg.SuperAdminPass)
	if err != nil {
		log.Errorf("Seeding failed: %v", err)
		os.Exit(1)
	}
	if created {
		log.Infof("Super Admin created: %s", utils.NormalizeEmail(cfg.SuperAdminEmail))
	} else {
		log.Info("Super Admin already exists")
	}
}

func seedAdmin(ctx context.Context, users adminStore, email, password string) (bool, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return false, errors.New("SUPER_ADMIN_EMAIL and SUPER_ADMIN_PASS are required")
	}

	_, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, repositories.ErrNotFound):
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	return true, users.Create(ctx, &models.User{
		Name:     "Super Admin",
		Email:    email,
		Password: string(hash),
		Role:     models.RoleSuperAdmin,
	})
}
