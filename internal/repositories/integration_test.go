package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-feed/internal/models"
	"github.com/stretchr/testify/suite"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PostgresSuite struct {
	suite.Suite
	ctx       context.Context
	container tc.Container
	db        *sqlx.DB
}

func TestPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container tests in short mode")
	}
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.ctx = context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(s.ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "5432")
	s.Require().NoError(err)

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())
	for i := 0; i < 10; i++ {
		s.db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	s.Require().NoError(err)
	s.Require().NoError(Migrate(s.ctx, s.db))
}

func (s *PostgresSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresSuite) SetupTest() {
	_, err := s.db.Exec(`TRUNCATE posts, tokens, users RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *PostgresSuite) saveUser(name string) int64 {
	id, err := NewUserWriteRepository(s.db, GetTxFromContext).Save(s.ctx, &models.User{
		Username: name, ProfileImageRef: name + ".png", PasswordHash: "h", Salt: "s",
	})
	s.Require().NoError(err)
	return id
}

func (s *PostgresSuite) TestMigrateIsIdempotent() {
	s.NoError(Migrate(s.ctx, s.db))
}

func (s *PostgresSuite) TestUserDuplicate() {
	s.saveUser("alice")

	_, err := NewUserWriteRepository(s.db, nil).Save(s.ctx, &models.User{
		Username: "alice", ProfileImageRef: "other.png", PasswordHash: "x", Salt: "y",
	})
	s.ErrorIs(err, ErrUsernameTaken)

	var count int
	s.NoError(s.db.Get(&count, `SELECT COUNT(*) FROM users WHERE username = 'alice'`))
	s.Equal(1, count)
}

func (s *PostgresSuite) TestTokenUpsertKeepsOneRow() {
	s.saveUser("alice")
	writer := NewTokenWriteRepository(s.db, GetTxFromContext)
	reader := NewTokenReadRepository(s.db)

	s.NoError(writer.Save(s.ctx, "alice", "first"))
	s.NoError(writer.Save(s.ctx, "alice", "second"))

	var count int
	s.NoError(s.db.Get(&count, `SELECT COUNT(*) FROM tokens WHERE username = 'alice'`))
	s.Equal(1, count)

	token, err := reader.GetByUsername(s.ctx, "alice")
	s.NoError(err)
	s.Equal("second", token)
}

func (s *PostgresSuite) TestRollbackDiscardsUser() {
	users := NewUserWriteRepository(s.db, GetTxFromContext)
	err := NewTxManager(s.db).WithTx(s.ctx, func(ctx context.Context) error {
		if _, err := users.Save(ctx, &models.User{Username: "carol", ProfileImageRef: "c.png", PasswordHash: "h", Salt: "s"}); err != nil {
			return err
		}
		return fmt.Errorf("token store unavailable")
	})
	s.Error(err)

	_, err = NewUserReadRepository(s.db).GetByUsername(s.ctx, "carol")
	s.ErrorIs(err, ErrNotFound)
}

func (s *PostgresSuite) TestPostsOrderedNewestFirst() {
	writer := NewPostWriteRepository(s.db)
	for _, ts := range []int64{5, 3, 4, 1, 2} {
		_, err := writer.Save(s.ctx, &models.Post{Username: "alice", ProfileImageRef: "a.png", CreatedAt: ts, TextContent: "t"})
		s.Require().NoError(err)
	}

	posts, err := NewPostReadRepository(s.db).List(s.ctx, 20, 0)
	s.Require().NoError(err)

	got := make([]int64, 0, len(posts))
	for _, p := range posts {
		got = append(got, p.CreatedAt)
	}
	s.Equal([]int64{5, 4, 3, 2, 1}, got)
}

func (s *PostgresSuite) TestPostsPageWindow() {
	writer := NewPostWriteRepository(s.db)
	for ts := int64(1); ts <= 30; ts++ {
		_, err := writer.Save(s.ctx, &models.Post{Username: "alice", ProfileImageRef: "a.png", CreatedAt: ts, TextContent: "t"})
		s.Require().NoError(err)
	}
	reader := NewPostReadRepository(s.db)

	page0, err := reader.List(s.ctx, 20, 0)
	s.Require().NoError(err)
	page1, err := reader.List(s.ctx, 20, 10)
	s.Require().NoError(err)

	s.Len(page0, 20)
	s.Len(page1, 20)
	s.Equal(int64(30), page0[0].CreatedAt)
	s.Equal(int64(20), page1[0].CreatedAt)
	s.Equal(int64(1), page1[19].CreatedAt)
	// rows 10..19 of page 0 are rows 0..9 of page 1
	s.Equal(page0[10:], page1[:10])

	past, err := reader.List(s.ctx, 20, 300)
	s.NoError(err)
	s.Empty(past)
}
