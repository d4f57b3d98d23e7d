package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
)

// CustomerRepository customer (WhatsApp contact) data access.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*model.Customer, error)
	// UpsertByPhone returns the existing customer for the phone or creates
	// one with the given name.
	UpsertByPhone(ctx context.Context, phone, firstName string) (*model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) error
}

type customerRepo struct {
	db *gorm.DB
}

// NewCustomerRepo creates a CustomerRepository.
func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepo) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	if err := r.db.WithContext(ctx).Where("customer_id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) GetByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	var c model.Customer
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) UpsertByPhone(ctx context.Context, phone, firstName string) (*model.Customer, error) {
	existing, err := r.GetByPhone(ctx, phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c := &model.Customer{Phone: phone, FirstName: firstName}
	if err := r.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}
