//go:build integration

package usecase

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/HYKY/hyky-services/internal/adapter/repository"
	"github.com/HYKY/hyky-services/internal/config"
	"github.com/HYKY/hyky-services/internal/domain/entity"
	domainerrors "github.com/HYKY/hyky-services/internal/domain/errors"
	"github.com/HYKY/hyky-services/internal/domain/service"
	"github.com/HYKY/hyky-services/internal/infrastructure/db/dbtest"
	"github.com/HYKY/hyky-services/internal/infrastructure/db/model"
	"github.com/HYKY/hyky-services/internal/infrastructure/metrics"
	"github.com/HYKY/hyky-services/internal/usecase/constants"
	"github.com/HYKY/hyky-services/internal/usecase/dto"
	"github.com/HYKY/hyky-services/pkg/messaging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestIntegration_LoginRotationAndRevocation(t *testing.T) {
	database := dbtest.Postgres(t)
	redisClient := dbtest.Redis(t)
	logger := zap.NewNop()
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.Auth.Salt = "integration-salt"
	cfg.Auth.HashCost = bcrypt.MinCost
	cfg.Auth.EnforceExpiry = true
	cfg.Auth.TokenTTL = 3600
	cfg.Redis.TTL = 600

	hash, err := service.NewPasswordHasher(cfg.Auth.Salt, cfg.Auth.HashCost).Hash("secret")
	require.NoError(t, err)
	user := &model.UserModel{UUID: uuid.New(), Username: "admin", Email: "we@hyky.games", Password: hash}
	require.NoError(t, database.Create(user).Error)

	repos := repository.InitRepositories(database, redisClient, logger)
	bus := messaging.NewRedisBus(redisClient)
	useCases := SetupUseCases(logger, cfg, repos, metrics.New(), bus)

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	revocations, err := bus.Subscribe(subCtx, constants.SessionsRevokedChannel)
	require.NoError(t, err)

	params := dto.LoginParams{
		Identifier: entity.Identifier{Kind: entity.IdentifierEmail, Value: "we@hyky.games"},
		Password:   "secret",
	}

	first, err := useCases.Auth.Login(ctx, params)
	require.NoError(t, err)

	payload, err := useCases.Token.VerifySession(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "admin", payload.Payload.Username)

	cached, err := redisClient.Get(ctx, constants.SessionKey(user.ID)).Result()
	require.NoError(t, err)
	assert.Equal(t, entity.TokenDigest(first), cached)

	const logins = 5
	tokens := make(chan string, logins)
	var wg sync.WaitGroup
	for i := 0; i < logins; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := useCases.Auth.Login(ctx, params)
			assert.NoError(t, err)
			tokens <- token
		}()
	}
	wg.Wait()
	close(tokens)

	var (
		valid      int
		validToken string
	)
	for token := range tokens {
		if _, err := useCases.Token.VerifySession(ctx, token); err == nil {
			valid++
			validToken = token
		}
	}
	assert.Equal(t, 1, valid)

	_, err = useCases.Token.VerifySession(ctx, first)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	current, err := redisClient.Get(ctx, constants.SessionKey(user.ID)).Result()
	require.NoError(t, err)
	assert.Equal(t, entity.TokenDigest(validToken), current)

	revokedFirst := false
	for i := 0; i < logins && !revokedFirst; i++ {
		select {
		case msg := <-revocations:
			var event dto.SessionsRevokedEvent
			require.NoError(t, msg.Decode(&event))
			assert.Equal(t, user.ID, event.UserID)
			assert.NotContains(t, string(msg.Payload), first)
			revokedFirst = slices.Contains(event.Digests, entity.TokenDigest(first))
		case <-time.After(5 * time.Second):
			t.Fatal("no revocation event received")
		}
	}
	assert.True(t, revokedFirst)

	page, err := useCases.AuditLog.GetUserLogs(ctx, user.ID, 1, 100)
	require.NoError(t, err)
	var successes, denied int
	for _, log := range page.Items {
		switch log.Type {
		case entity.AuditLogTypeLoginSuccess:
			successes++
		case entity.AuditLogTypeAccessDenied:
			denied++
		}
	}
	assert.Equal(t, logins+1, successes)
	assert.Positive(t, denied)
}
