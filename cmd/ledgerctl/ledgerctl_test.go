package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/questledger/internal/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseDrafts(t *testing.T) {
	single, err := parseDrafts([]byte(` {"lessonId":"l1","questions":[{"qid":"q1","options":["a","b"],"answerIndex":1}]}`))
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, "l1", single[0].LessonID)

	many, err := parseDrafts([]byte(`[{"lessonId":"l1"},{"lessonId":"l2","difficulty":"hard"}]`))
	require.NoError(t, err)
	require.Len(t, many, 2)
	assert.Equal(t, models.DifficultyHard, many[1].Difficulty)

	_, err = parseDrafts([]byte(`{"lessonId":`))
	assert.Error(t, err)
}

func TestCommandsAgainstSQLite(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "ledger.db")
	quizFile := filepath.Join(dir, "quiz.json")
	require.NoError(t, os.WriteFile(quizFile, []byte(`{
  "lessonId": "fractions-1",
  "difficulty": "hard",
  "questions": [
    {"qid": "q1", "prompt": "1/2 + 1/2", "options": ["1", "2"], "answerIndex": 0}
  ]
}`), 0o644))

	base := []string{"--driver", "sqlite3", "--dsn", dsn}

	out, err := run(t, append([]string{"migrate"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "applied 0001_init")

	out, err = run(t, append([]string{"user", "add", "learner-1"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "user learner-1: level=1 xp=0")

	out, err = run(t, append([]string{"quiz", "import", quizFile}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "created fractions-1 v1 (hard, 1 questions, published=false)")

	out, err = run(t, append([]string{"quiz", "publish", "fractions-1", "1"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "published fractions-1 v1")

	_, err = run(t, append([]string{"quiz", "publish", "fractions-1", "zero"}, base...)...)
	assert.Error(t, err)

	out, err = run(t, append([]string{"wallet", "reconcile", "learner-1"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "consistent")

	out, err = run(t, append([]string{"leaderboard", "--json", "--week", "2024-03-06"}, base...)...)
	require.NoError(t, err)
	var lb models.Leaderboard
	require.NoError(t, json.Unmarshal([]byte(out), &lb))
	assert.Equal(t, "2024-03-04", lb.WeekStart)
	assert.Empty(t, lb.Entries)
}
