package migration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	assetapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/asset"
	financeapp "github.com/KRaymonne/appli-sitinfra-sub004/internal/application/finance"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/application/identity"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Fixtures is the content of a seed file
type Fixtures struct {
	Users     []UserFixture      `yaml:"users"`
	Banks     []BankFixture      `yaml:"banks"`
	Equipment []EquipmentFixture `yaml:"equipment"`
}

// UserFixture seeds an account. Password is the clear text password.
type UserFixture struct {
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Role      string `yaml:"role"`
}

// BankFixture seeds a bank account
type BankFixture struct {
	Name          string `yaml:"name"`
	Code          string `yaml:"code"`
	AccountNumber string `yaml:"accountNumber"`
	IBAN          string `yaml:"iban"`
	SwiftCode     string `yaml:"swiftCode"`
	Branch        string `yaml:"branch"`
	Currency      string `yaml:"currency"`
	Balance       string `yaml:"balance"`
}

// EquipmentFixture seeds a piece of equipment. Dates use YYYY-MM-DD.
type EquipmentFixture struct {
	Name          string `yaml:"name"`
	SerialNumber  string `yaml:"serialNumber"`
	Category      string `yaml:"category"`
	Brand         string `yaml:"brand"`
	Model         string `yaml:"model"`
	Location      string `yaml:"location"`
	PurchaseDate  string `yaml:"purchaseDate"`
	PurchasePrice string `yaml:"purchasePrice"`
}

// LoadFixtures reads a YAML seed file
func LoadFixtures(path string) (*Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return DecodeFixtures(f)
}

// DecodeFixtures parses YAML fixtures. Unknown keys are rejected so typos in
// seed files surface instead of being silently dropped.
func DecodeFixtures(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixtures
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &fx, nil
}

// UserCreator creates user accounts
type UserCreator interface {
	Create(ctx context.Context, req identity.RegisterRequest) (*identity.UserResponse, error)
}

// BankCreator creates banks
type BankCreator interface {
	Create(ctx context.Context, req financeapp.CreateBankRequest) (*financeapp.BankResponse, error)
}

// EquipmentCreator creates equipment
type EquipmentCreator interface {
	Create(ctx context.Context, req assetapp.CreateEquipmentRequest) (*assetapp.EquipmentResponse, error)
}

// SeedResult counts what a seed run did
type SeedResult struct {
	Created int
	Skipped int
}

// Seeder inserts fixtures through the application services so that seeded
// rows go through the same validation and password hashing as API calls.
type Seeder struct {
	users     UserCreator
	banks     BankCreator
	equipment EquipmentCreator
	logger    *zap.Logger
}

// NewSeeder creates a Seeder
func NewSeeder(users UserCreator, banks BankCreator, equipment EquipmentCreator, logger *zap.Logger) *Seeder {
	return &Seeder{users: users, banks: banks, equipment: equipment, logger: logger}
}

// Seed creates every fixture. Records that already exist are skipped, which
// makes running the same file twice harmless.
func (s *Seeder) Seed(ctx context.Context, fx *Fixtures) (SeedResult, error) {
	var res SeedResult

	for _, u := range fx.Users {
		_, err := s.users.Create(ctx, identity.RegisterRequest{
			Email:     u.Email,
			Password:  u.Password,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Role:      u.Role,
		})
		if err := s.record(&res, "user", u.Email, err); err != nil {
			return res, err
		}
	}

	for _, b := range fx.Banks {
		req := financeapp.CreateBankRequest{
			Name:          b.Name,
			Code:          b.Code,
			AccountNumber: b.AccountNumber,
			IBAN:          b.IBAN,
			SwiftCode:     b.SwiftCode,
			Branch:        b.Branch,
			Currency:      b.Currency,
		}
		if b.Balance != "" {
			balance, err := decimal.NewFromString(b.Balance)
			if err != nil {
				return res, fmt.Errorf("bank %s: invalid balance %q: %w", b.Code, b.Balance, err)
			}
			req.Balance = &balance
		}
		_, err := s.banks.Create(ctx, req)
		if err := s.record(&res, "bank", b.Code, err); err != nil {
			return res, err
		}
	}

	for _, e := range fx.Equipment {
		req := assetapp.CreateEquipmentRequest{
			Name:         e.Name,
			SerialNumber: e.SerialNumber,
			Category:     e.Category,
			Brand:        e.Brand,
			Model:        e.Model,
			Location:     e.Location,
		}
		if e.PurchaseDate != "" {
			d, err := valueobject.ParseDate(e.PurchaseDate)
			if err != nil {
				return res, fmt.Errorf("equipment %s: invalid purchase date %q: %w", e.Name, e.PurchaseDate, err)
			}
			req.PurchaseDate = &d
		}
		if e.PurchasePrice != "" {
			price, err := decimal.NewFromString(e.PurchasePrice)
			if err != nil {
				return res, fmt.Errorf("equipment %s: invalid purchase price %q: %w", e.Name, e.PurchasePrice, err)
			}
			req.PurchasePrice = &price
		}
		_, err := s.equipment.Create(ctx, req)
		if err := s.record(&res, "equipment", e.Name, err); err != nil {
			return res, err
		}
	}

	s.logger.Info("Seed completed",
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

func (s *Seeder) record(res *SeedResult, kind, key string, err error) error {
	switch {
	case err == nil:
		res.Created++
		s.logger.Debug("Seeded record", zap.String("kind", kind), zap.String("key", key))
		return nil
	case errors.Is(err, shared.ErrAlreadyExists):
		res.Skipped++
		s.logger.Info("Record already exists, skipping", zap.String("kind", kind), zap.String("key", key))
		return nil
	default:
		return fmt.Errorf("failed to seed %s %s: %w", kind, key, err)
	}
}
