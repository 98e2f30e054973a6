// Seed fills a database with demo users, groups and posts.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ArthurDelaporte/Yatube-Back/internal/auth"
	"github.com/ArthurDelaporte/Yatube-Back/internal/config"
	"github.com/ArthurDelaporte/Yatube-Back/internal/database"
	"github.com/ArthurDelaporte/Yatube-Back/internal/logs"
	"github.com/ArthurDelaporte/Yatube-Back/internal/schema"
)

var words = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod
tempor incididunt ut labore et dolore magna aliqua ut enim ad minim veniam quis nostrud`)

func main() {
	var numUsers, numGroups, numPosts, postWords int
	var password string
	var migrate bool
	flag.IntVar(&numUsers, "users", 5, "number of demo users")
	flag.IntVar(&numGroups, "groups", 3, "number of groups")
	flag.IntVar(&numPosts, "posts", 100, "number of posts")
	flag.IntVar(&postWords, "words", 30, "words per post")
	flag.StringVar(&password, "password", "yatube-demo", "password of every demo user")
	flag.BoolVar(&migrate, "migrate", true, "create missing tables first")
	flag.Parse()

	cfg := config.LoadConfig()
	if cfg.DBUrl == "" {
		fatal("DATABASE_URL is required", nil)
	}

	ctx := context.Background()
	start := time.Now()

	if migrate {
		if err := database.Connect(cfg.DBUrl, cfg.DBLogMode); err != nil {
			fatal("Database connection failed", err)
		}
		if err := schema.Migrate(database.DB); err != nil {
			fatal("Migration failed", err)
		}
		_ = database.Close()
	}

	pool, err := pgxpool.New(ctx, cfg.DBUrl)
	if err != nil {
		fatal("Pool creation failed", err)
	}
	defer pool.Close()

	hash, err := auth.HashPassword(password)
	if err != nil {
		fatal("Password hashing failed", err)
	}

	userIDs, err := seedUsers(ctx, pool, numUsers, hash)
	if err != nil {
		fatal("Seeding users failed", err)
	}
	groupIDs, err := seedGroups(ctx, pool, numGroups)
	if err != nil {
		fatal("Seeding groups failed", err)
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	inserted, err := seedPosts(ctx, pool, r, userIDs, groupIDs, numPosts, postWords)
	if err != nil {
		fatal("Seeding posts failed", err)
	}

	logs.LogJSON("INFO", "Seed done", map[string]interface{}{
		"users":    len(userIDs),
		"groups":   len(groupIDs),
		"posts":    inserted,
		"duration": time.Since(start).Truncate(time.Millisecond).String(),
	})
}

// seedUsers upserts demo1..demoN and returns their ids. demo1 is staff.
func seedUsers(ctx context.Context, pool *pgxpool.Pool, n int, passwordHash string) ([]int64, error) {
	batch := &pgx.Batch{}
	now := time.Now()
	for i := 1; i <= n; i++ {
		username := fmt.Sprintf("demo%d", i)
		batch.Queue(`INSERT INTO users (username, email, first_name, last_name, password_hash, is_staff, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
			RETURNING id`,
			username, username+"@example.com", "Demo", fmt.Sprintf("User %d", i), passwordHash, i == 1, now)
	}
	return collectIDs(pool.SendBatch(ctx, batch), n)
}

// seedGroups upserts group-1..group-N and returns their ids.
func seedGroups(ctx context.Context, pool *pgxpool.Pool, n int) ([]int64, error) {
	batch := &pgx.Batch{}
	for i := 1; i <= n; i++ {
		batch.Queue(`INSERT INTO "groups" (title, slug, description)
			VALUES ($1, $2, $3)
			ON CONFLICT (slug) DO UPDATE SET title = EXCLUDED.title
			RETURNING id`,
			fmt.Sprintf("Group %d", i), fmt.Sprintf("group-%d", i), "Demo group")
	}
	return collectIDs(pool.SendBatch(ctx, batch), n)
}

func collectIDs(br pgx.BatchResults, n int) ([]int64, error) {
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		var id int64
		if err := br.QueryRow().Scan(&id); err != nil {
			_ = br.Close()
			return nil, fmt.Errorf("batch row %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("batch close: %w", err)
	}
	return ids, nil
}

// seedPosts copies n posts spread over the last month. About a third of them
// have no group.
func seedPosts(ctx context.Context, pool *pgxpool.Pool, r *rand.Rand, userIDs, groupIDs []int64, n, postWords int) (int64, error) {
	if len(userIDs) == 0 || n <= 0 {
		return 0, nil
	}

	now := time.Now()
	monthAgo := now.Add(-30 * 24 * time.Hour)

	makeText := func() string {
		out := make([]string, postWords)
		for i := range out {
			out[i] = words[r.Intn(len(words))]
		}
		return strings.Join(out, " ")
	}

	return pool.CopyFrom(ctx,
		pgx.Identifier{"posts"},
		[]string{"text", "created_at", "author_id", "group_id", "image"},
		pgx.CopyFromSlice(n, func(i int) ([]any, error) {
			var groupID *int64
			if len(groupIDs) > 0 && r.Intn(3) > 0 {
				id := groupIDs[r.Intn(len(groupIDs))]
				groupID = &id
			}
			createdAt := monthAgo.Add(time.Duration(r.Int63n(int64(now.Sub(monthAgo)))))
			return []any{makeText(), createdAt, userIDs[r.Intn(len(userIDs))], groupID, ""}, nil
		}),
	)
}

func fatal(message string, err error) {
	fields := map[string]interface{}{}
	if err != nil {
		fields["error"] = err.Error()
	}
	logs.LogJSON("FATAL", message, fields)
	os.Exit(1)
}
