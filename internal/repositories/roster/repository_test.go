package roster_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-tracker/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-tracker/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tracker/internal/repositories/roster"
	"github.com/KirkDiggler/rpg-tracker/internal/testutils"
)

const testKey = "dndTrackerState"

// RepositoryTestSuite runs the same contract against every store
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func() roster.Repository
	repo    roster.Repository
	ctx     context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()
}

func testRoster() *dnd5e.Roster {
	return &dnd5e.Roster{
		SelectedCharacterID: "char_1",
		Characters: []*dnd5e.Character{
			{
				ID:        "char_1",
				Name:      "Aria",
				MaxHP:     24,
				CurrentHP: 17,
				TempHP:    3,
				Resources: []*dnd5e.Resource{
					{ID: "res_1", Name: "Bardic Inspiration", Current: 2, Max: 3, RecoversOn: dnd5e.RecoveryLong},
				},
				SpellSlots: []*dnd5e.SpellSlot{
					{ID: "slot_1", Level: 1, Max: 4, Used: 1, RecoversOn: dnd5e.RecoveryLong},
				},
				Statuses: []*dnd5e.Status{
					{ID: "st_1", Name: dnd5e.ConditionProne, Remaining: 0, DurationType: dnd5e.DurationRest},
				},
				Concentration: &dnd5e.Concentration{Spell: "Bless", Since: 1700000000000},
			},
		},
	}
}

func (s *RepositoryTestSuite) TestLoadEmpty() {
	out, err := s.repo.Load(s.ctx, roster.LoadInput{})

	s.Nil(out)
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestSaveThenLoad() {
	_, err := s.repo.Save(s.ctx, roster.SaveInput{Roster: testRoster()})
	s.Require().NoError(err)

	out, err := s.repo.Load(s.ctx, roster.LoadInput{})
	s.Require().NoError(err)
	s.Equal(testRoster(), out.Roster)
}

func (s *RepositoryTestSuite) TestSaveReplaces() {
	_, err := s.repo.Save(s.ctx, roster.SaveInput{Roster: testRoster()})
	s.Require().NoError(err)

	_, err = s.repo.Save(s.ctx, roster.SaveInput{Roster: dnd5e.NewRoster()})
	s.Require().NoError(err)

	out, err := s.repo.Load(s.ctx, roster.LoadInput{})
	s.Require().NoError(err)
	s.Empty(out.Roster.Characters)
	s.Empty(out.Roster.SelectedCharacterID)
}

func (s *RepositoryTestSuite) TestSaveNil() {
	_, err := s.repo.Save(s.ctx, roster.SaveInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositoryTestSuite) TestClear() {
	_, err := s.repo.Save(s.ctx, roster.SaveInput{Roster: testRoster()})
	s.Require().NoError(err)

	_, err = s.repo.Clear(s.ctx, roster.ClearInput{})
	s.Require().NoError(err)

	_, err = s.repo.Load(s.ctx, roster.LoadInput{})
	s.True(errors.IsNotFound(err))

	// clearing twice is fine
	_, err = s.repo.Clear(s.ctx, roster.ClearInput{})
	s.NoError(err)
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() roster.Repository { return roster.NewInMemory() },
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() roster.Repository {
			client, _ := testutils.CreateTestRedisClient(t)
			repo, err := roster.NewRedis(&roster.RedisConfig{Client: client, Key: testKey})
			if err != nil {
				t.Fatalf("new redis repository: %v", err)
			}
			return repo
		},
	})
}

func TestSQLiteRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() roster.Repository {
			repo, err := roster.NewSQLite(context.Background(), &roster.SQLiteConfig{
				Path: filepath.Join(t.TempDir(), "nested", "tracker.db"),
				Key:  testKey,
			})
			if err != nil {
				t.Fatalf("open sqlite repository: %v", err)
			}
			t.Cleanup(func() { _ = repo.Close() })
			return repo
		},
	})
}

func TestRedisConfigValidation(t *testing.T) {
	_, err := roster.NewRedis(nil)
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}

	client, _ := testutils.CreateTestRedisClient(t)
	_, err = roster.NewRedis(&roster.RedisConfig{Client: client})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument for empty key, got %v", err)
	}
}

func TestRedisCorruptSnapshot(t *testing.T) {
	client, mr := testutils.CreateTestRedisClient(t)
	if err := mr.Set(testKey, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo, err := roster.NewRedis(&roster.RedisConfig{Client: client, Key: testKey})
	if err != nil {
		t.Fatalf("new redis repository: %v", err)
	}

	_, err = repo.Load(context.Background(), roster.LoadInput{})
	if got := errors.GetCode(err); got != errors.CodeDataLoss {
		t.Fatalf("expected data loss, got %v", err)
	}
}

var nullEntrySnapshots = map[string]string{
	"null character": `{"characters":[null]}`,
	"null slot":      `{"characters":[{"id":"c1","name":"Aria","maxHP":10,"currentHP":10,"spellSlots":[null]}]}`,
	"null resource":  `{"characters":[{"id":"c1","name":"Aria","maxHP":10,"currentHP":10,"resources":[null]}]}`,
	"null status":    `{"characters":[{"id":"c1","name":"Aria","maxHP":10,"currentHP":10,"statuses":[null]}]}`,
}

func TestRedisNullEntries(t *testing.T) {
	for name, blob := range nullEntrySnapshots {
		t.Run(name, func(t *testing.T) {
			client, mr := testutils.CreateTestRedisClient(t)
			if err := mr.Set(testKey, blob); err != nil {
				t.Fatalf("seed: %v", err)
			}
			repo, err := roster.NewRedis(&roster.RedisConfig{Client: client, Key: testKey})
			if err != nil {
				t.Fatalf("new redis repository: %v", err)
			}

			_, err = repo.Load(context.Background(), roster.LoadInput{})
			if got := errors.GetCode(err); got != errors.CodeDataLoss {
				t.Fatalf("expected data loss, got %v", err)
			}
		})
	}
}

func TestSQLiteNullEntries(t *testing.T) {
	ctx := context.Background()
	for name, blob := range nullEntrySnapshots {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tracker.db")
			repo, err := roster.NewSQLite(ctx, &roster.SQLiteConfig{Path: path, Key: testKey})
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			t.Cleanup(func() { _ = repo.Close() })

			db, err := sql.Open("sqlite", path)
			if err != nil {
				t.Fatalf("open raw: %v", err)
			}
			defer db.Close()
			if _, err := db.ExecContext(ctx,
				`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, 0)`, testKey, []byte(blob)); err != nil {
				t.Fatalf("seed: %v", err)
			}

			_, err = repo.Load(ctx, roster.LoadInput{})
			if got := errors.GetCode(err); got != errors.CodeDataLoss {
				t.Fatalf("expected data loss, got %v", err)
			}
		})
	}
}

func TestRedisStoresWithoutTTL(t *testing.T) {
	client, mr := testutils.CreateTestRedisClient(t)
	repo, err := roster.NewRedis(&roster.RedisConfig{Client: client, Key: testKey})
	if err != nil {
		t.Fatalf("new redis repository: %v", err)
	}

	if _, err := repo.Save(context.Background(), roster.SaveInput{Roster: testRoster()}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL(testKey); ttl != 0 {
		t.Fatalf("expected no ttl, got %s", ttl)
	}
}

func TestSQLiteRequiresPath(t *testing.T) {
	_, err := roster.NewSQLite(context.Background(), &roster.SQLiteConfig{Key: testKey})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tracker.db")
	at := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	cfg := &roster.SQLiteConfig{Path: path, Key: testKey, Clock: &clock.Fixed{At: at}}

	first, err := roster.NewSQLite(ctx, cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := first.Save(ctx, roster.SaveInput{Roster: testRoster()}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := roster.NewSQLite(ctx, cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	out, err := second.Load(ctx, roster.LoadInput{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Roster.Characters[0].Name != "Aria" {
		t.Fatalf("unexpected roster: %+v", out.Roster)
	}

	updated, err := second.UpdatedAt(ctx)
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if updated != at.UnixMilli() {
		t.Fatalf("updated_at %d, want %d", updated, at.UnixMilli())
	}
}
