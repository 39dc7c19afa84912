package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	domainRepo "github.com/sangkips/cueclub-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, domainRepo.ErrDuplicateKey},
		{"postgres unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), domainRepo.ErrDuplicateKey},
		{"sqlite unique violation", errors.New("UNIQUE constraint failed: bills.code"), domainRepo.ErrDuplicateKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translate(tt.err))
		})
	}

	other := &pgconn.PgError{Code: "23503"}
	assert.Same(t, other, translate(other))
}
