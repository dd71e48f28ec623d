package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"project-tracker/internal/logger"
	"project-tracker/internal/models"
	"project-tracker/internal/security"
	"project-tracker/internal/services"
)

// Seed makes sure every role exists and that there is at least one admin.
// It is safe to run on every start.
func Seed(ctx context.Context, roles services.RoleStore, users services.UserStore, hasher security.Hasher, adminEmail, adminPassword string, log logrus.FieldLogger) error {
	for _, name := range models.AllRoles() {
		ok, err := roles.ExistsByRoleName(ctx, name)
		if err != nil {
			return fmt.Errorf("check role %s: %w", name, err)
		}
		if ok {
			continue
		}
		if err := roles.Create(ctx, &models.Role{RoleName: name}); err != nil {
			return fmt.Errorf("create role %s: %w", name, err)
		}
		log.WithField("role", name).Info("seeded role")
	}

	return createDefaultAdmin(ctx, roles, users, hasher, adminEmail, adminPassword, log)
}

// the admin comes only from config
func createDefaultAdmin(ctx context.Context, roles services.RoleStore, users services.UserStore, hasher security.Hasher, email, password string, log logrus.FieldLogger) error {
	adminRole, err := roles.FindByRoleName(ctx, models.RoleAdmin)
	if err != nil {
		return err
	}
	if adminRole == nil {
		return fmt.Errorf("role %s missing after seeding", models.RoleAdmin)
	}

	all, err := users.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, u := range all {
		if u.RoleID == adminRole.ID {
			return nil
		}
	}

	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		log.WithField("email", logger.MaskEmail(email)).Warn("default admin email belongs to a non-admin account; skipping")
		return nil
	}

	hash, err := hasher.Encode(password)
	if err != nil {
		return fmt.Errorf("hash default admin password: %w", err)
	}
	admin := &models.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: hash,
		FullName:     "Administrator",
		RoleID:       adminRole.ID,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create default admin: %w", err)
	}

	log.WithField("email", logger.MaskEmail(email)).Info("created default admin user")
	return nil
}
