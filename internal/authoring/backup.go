package authoring

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"bijbelquiz.app/backend/internal/kvstore"
	"bijbelquiz.app/backend/internal/logger"
	"bijbelquiz.app/backend/internal/quiz"
)

// Storage keys shared with the browser version of the form.
const (
	QuestionsKey = "bijbelquiz_questions"
	LastTypeKey  = "bijbelquiz_last_type"
)

// Backup persists the session list and the last selected type.
// Loads fail closed: a missing, unreadable or corrupt entry is reported as absent.
type Backup struct {
	kv      kvstore.KV
	timeout time.Duration
}

func NewBackup(kv kvstore.KV, timeout time.Duration) *Backup {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Backup{kv: kv, timeout: timeout}
}

func (b *Backup) Save(questions []quiz.Question) error {
	if questions == nil {
		questions = []quiz.Question{}
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	return b.kv.Set(ctx, QuestionsKey, string(data))
}

func (b *Backup) Load() ([]quiz.Question, bool) {
	raw, ok := b.get(QuestionsKey)
	if !ok {
		return nil, false
	}
	var questions []quiz.Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		logger.Log.Warn("ignoring corrupt question backup", zap.Error(err))
		return nil, false
	}
	if questions == nil {
		return nil, false
	}
	return questions, true
}

func (b *Backup) SaveType(t quiz.Type) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	return b.kv.Set(ctx, LastTypeKey, string(t))
}

func (b *Backup) LoadType() (quiz.Type, bool) {
	raw, ok := b.get(LastTypeKey)
	if !ok {
		return "", false
	}
	t, ok := quiz.ParseType(raw)
	if !ok {
		logger.Log.Warn("ignoring unknown stored question type", zap.String("type", raw))
	}
	return t, ok
}

func (b *Backup) get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	raw, found, err := b.kv.Get(ctx, key)
	if err != nil {
		logger.Log.Warn("backup read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return raw, found
}
