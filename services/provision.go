package services

import (
	"context"
	"fmt"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/utils"

	"github.com/rs/zerolog/log"
)

// Provision creates the login record and the admin profile when they do not exist
// yet. Existing records are left untouched.
func Provision(ctx context.Context, store *repository.Store, username, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("provision user: %w", err)
	}
	created, err := store.Users.EnsureDefault(ctx, models.User{Username: username, Pass: hash})
	if err != nil {
		return fmt.Errorf("provision user: %w", err)
	}
	if created {
		log.Info().Str("user", username).Msg("default user provisioned")
	}
	if _, err := store.Admins.Ensure(ctx, models.DefaultAdmin()); err != nil {
		return fmt.Errorf("provision admin: %w", err)
	}
	return nil
}

// SyncSequences raises the number counters to at least the number of stored
// documents so data imported without counters does not get duplicate numbers.
func SyncSequences(ctx context.Context, store *repository.Store) error {
	invoices, err := store.Invoices.Count(ctx)
	if err != nil {
		return fmt.Errorf("count invoices: %w", err)
	}
	if err := store.Counters.EnsureAtLeast(ctx, repository.InvoiceSequence, invoices); err != nil {
		return fmt.Errorf("sync invoice sequence: %w", err)
	}
	quotations, err := store.Quotations.Count(ctx)
	if err != nil {
		return fmt.Errorf("count quotations: %w", err)
	}
	if err := store.Counters.EnsureAtLeast(ctx, repository.QuotationSequence, quotations); err != nil {
		return fmt.Errorf("sync quotation sequence: %w", err)
	}
	log.Debug().Int64("invoices", invoices).Int64("quotations", quotations).Msg("sequences synced")
	return nil
}
