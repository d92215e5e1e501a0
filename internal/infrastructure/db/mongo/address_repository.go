package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/muller/cepapp/internal/core/domain"
	"github.com/muller/cepapp/internal/core/ports"
)

const collectionAddresses = "addresses"

type AddressRepository struct {
	col *mongo.Collection
	ids *sequence
}

func NewAddressRepository(db *mongo.Database) *AddressRepository {
	return &AddressRepository{
		col: db.Collection(collectionAddresses),
		ids: newSequence(db, collectionAddresses),
	}
}

type mongoAddress struct {
	ID           int64  `bson:"_id"`
	Street       string `bson:"street"`
	Number       string `bson:"number"`
	Complement   string `bson:"complement,omitempty"`
	Neighborhood string `bson:"neighborhood"`
	City         string `bson:"city"`
	State        string `bson:"state"`
	ZipCode      string `bson:"zip_code"`
	OwnerUserID  int64  `bson:"owner_user_id"`
}

func toMongoAddress(a *domain.Address) mongoAddress {
	return mongoAddress{
		ID:           a.ID,
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
		OwnerUserID:  a.OwnerUserID,
	}
}

func (m mongoAddress) toDomain() *domain.Address {
	return &domain.Address{
		ID:           m.ID,
		Street:       m.Street,
		Number:       m.Number,
		Complement:   m.Complement,
		Neighborhood: m.Neighborhood,
		City:         m.City,
		State:        m.State,
		ZipCode:      m.ZipCode,
		OwnerUserID:  m.OwnerUserID,
	}
}

// Create assigns the next address id and inserts the document.
func (r *AddressRepository) Create(ctx context.Context, a *domain.Address) (*domain.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}

	doc := toMongoAddress(a)
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert address: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id int64) (*domain.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoAddress
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, fmt.Errorf("find address: %w", err)
	}
	return doc.toDomain(), nil
}

// Update replaces the stored document; concurrent updates are last-write-wins.
func (r *AddressRepository) Update(ctx context.Context, a *domain.Address) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": a.ID}, toMongoAddress(a))
	if err != nil {
		return fmt.Errorf("replace address: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

func (r *AddressRepository) List(ctx context.Context, page ports.PageRequest) ([]*domain.Address, int64, error) {
	return r.list(ctx, bson.M{}, page)
}

func (r *AddressRepository) ListByOwner(ctx context.Context, ownerID int64, page ports.PageRequest) ([]*domain.Address, int64, error) {
	return r.list(ctx, bson.M{"owner_user_id": ownerID}, page)
}

func (r *AddressRepository) list(ctx context.Context, filter bson.M, page ports.PageRequest) ([]*domain.Address, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count addresses: %w", err)
	}

	cur, err := r.col.Find(ctx, filter, pageOptions(page))
	if err != nil {
		return nil, 0, fmt.Errorf("list addresses: %w", err)
	}
	var docs []mongoAddress
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode addresses: %w", err)
	}

	out := make([]*domain.Address, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, total, nil
}

func (r *AddressRepository) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"owner_user_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("delete addresses of owner: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the owner lookup index.
func (r *AddressRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_user_id", Value: 1}}},
		{Keys: bson.D{{Key: "zip_code", Value: 1}}},
	})
	return err
}
