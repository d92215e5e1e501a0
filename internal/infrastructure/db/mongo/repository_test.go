package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/muller/cepapp/internal/core/domain"
	"github.com/muller/cepapp/internal/core/ports"
)

func counterResponse(name string, seq int64) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
		{Key: "_id", Value: name},
		{Key: "seq", Value: seq},
	}})
}

func userDoc(id int64, email string, role domain.Role) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Maria"},
		{Key: "email", Value: email},
		{Key: "password_hash", Value: "$2a$10$hash"},
		{Key: "role", Value: string(role)},
		{Key: "created_at", Value: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
}

func addressDoc(id, owner int64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "street", Value: "Praça dos Três Poderes"},
		{Key: "number", Value: "-1"},
		{Key: "neighborhood", Value: "Zona Cívico-Administrativa"},
		{Key: "city", Value: "Brasília"},
		{Key: "state", Value: "DF"},
		{Key: "zip_code", Value: "70160900"},
		{Key: "owner_user_id", Value: owner},
	}
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "cepapp.users"

	mt.Run("create assigns sequential id", func(mt *mtest.T) {
		mt.AddMockResponses(counterResponse("users", 7), mtest.CreateSuccessResponse())

		repo := NewUserRepository(mt.DB)
		u, err := repo.Create(context.Background(), &domain.User{Name: "Maria", Email: "maria@example.com", Role: domain.RoleUser})
		require.NoError(mt, err)
		assert.Equal(mt, int64(7), u.ID)
		assert.Equal(mt, "maria@example.com", u.Email)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(
			counterResponse("users", 8),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
		)

		_, err := NewUserRepository(mt.DB).Create(context.Background(), &domain.User{Email: "maria@example.com"})
		assert.ErrorIs(mt, err, domain.ErrUserExists)
	})

	mt.Run("find by email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, userDoc(3, "maria@example.com", domain.RoleAdmin)))

		u, err := NewUserRepository(mt.DB).FindByEmail(context.Background(), "maria@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), u.ID)
		assert.Equal(mt, domain.RoleAdmin, u.Role)
		assert.Equal(mt, 2024, u.CreatedAt.Year())
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewUserRepository(mt.DB).FindByID(context.Background(), 99)
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("update missing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := NewUserRepository(mt.DB).Update(context.Background(), &domain.User{ID: 99})
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("update existing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		err := NewUserRepository(mt.DB).Update(context.Background(), &domain.User{ID: 3, Email: "new@example.com"})
		assert.NoError(mt, err)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		repo := NewUserRepository(mt.DB)
		assert.NoError(mt, repo.Delete(context.Background(), 3))
		assert.ErrorIs(mt, repo.Delete(context.Background(), 3), domain.ErrUserNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int64(2)}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				userDoc(1, "a@example.com", domain.RoleAdmin),
				userDoc(2, "b@example.com", domain.RoleUser),
			),
		)

		users, total, err := NewUserRepository(mt.DB).List(context.Background(), ports.PageRequest{Page: 1, Limit: 20})
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), total)
		require.Len(mt, users, 2)
		assert.Equal(mt, "b@example.com", users[1].Email)
	})
}

func TestAddressRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "cepapp.addresses"

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(counterResponse("addresses", 1), mtest.CreateSuccessResponse())

		a, err := NewAddressRepository(mt.DB).Create(context.Background(), &domain.Address{City: "Brasília", OwnerUserID: 3})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), a.ID)
		assert.Equal(mt, int64(3), a.OwnerUserID)
	})

	mt.Run("counter failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom"}))

		_, err := NewAddressRepository(mt.DB).Create(context.Background(), &domain.Address{})
		assert.Error(mt, err)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, addressDoc(4, 3)))

		a, err := NewAddressRepository(mt.DB).FindByID(context.Background(), 4)
		require.NoError(mt, err)
		assert.Equal(mt, "Brasília", a.City)
		assert.Equal(mt, "-1", a.Number)
		assert.Equal(mt, int64(3), a.OwnerUserID)
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewAddressRepository(mt.DB).FindByID(context.Background(), 4)
		assert.ErrorIs(mt, err, domain.ErrAddressNotFound)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := NewAddressRepository(mt.DB).Update(context.Background(), &domain.Address{ID: 4})
		assert.ErrorIs(mt, err, domain.ErrAddressNotFound)
	})

	mt.Run("list by owner", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int64(1)}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, addressDoc(4, 3)),
		)

		items, total, err := NewAddressRepository(mt.DB).ListByOwner(context.Background(), 3, ports.PageRequest{Page: 1, Limit: 20})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), total)
		require.Len(mt, items, 1)
		assert.Equal(mt, int64(4), items[0].ID)
	})

	mt.Run("delete by owner", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))

		n, err := NewAddressRepository(mt.DB).DeleteByOwner(context.Background(), 3)
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), n)
	})
}
