package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const statementDeadlineKey = "internship:statement_deadline"

type statementDeadline struct {
	parent context.Context
	cancel context.CancelFunc
}

// StatementTimeout - плагин gorm: каждая операция получает собственный дедлайн,
// отсчитываемый с момента ее запуска. Дедлайн покрывает и ожидание соединения
// из пула, и транзакцию по умолчанию вокруг create/update/delete.
type StatementTimeout struct {
	Timeout time.Duration
}

func (StatementTimeout) Name() string { return "statement_timeout" }

func (p StatementTimeout) Initialize(db *gorm.DB) error {
	if p.Timeout <= 0 {
		return nil
	}

	cb := db.Callback()
	processors := []struct {
		name   string
		before func(name string, fn func(*gorm.DB)) error
		after  func(name string, fn func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("*").Register, cb.Create().After("*").Register},
		{"query", cb.Query().Before("*").Register, cb.Query().After("*").Register},
		{"update", cb.Update().Before("*").Register, cb.Update().After("*").Register},
		{"delete", cb.Delete().Before("*").Register, cb.Delete().After("*").Register},
		{"raw", cb.Raw().Before("*").Register, cb.Raw().After("*").Register},
		// Row/Rows читаются вызывающим уже после колбэков, поэтому контекст
		// не отменяем: его освободит сам таймер.
		{"row", cb.Row().Before("*").Register, nil},
	}

	for _, proc := range processors {
		if err := proc.before("timeout:start_"+proc.name, p.start); err != nil {
			return fmt.Errorf("register %s timeout: %w", proc.name, err)
		}
		if proc.after == nil {
			continue
		}
		if err := proc.after("timeout:finish_"+proc.name, finish); err != nil {
			return fmt.Errorf("register %s timeout: %w", proc.name, err)
		}
	}
	return nil
}

// start отсчитывает дедлайн от исходного контекста запроса. Цепочка вида
// q.Count(); q.Find() работает на одном Statement, поэтому родителя берем из
// предыдущей операции, а не ее уже истекший контекст.
func (p StatementTimeout) start(db *gorm.DB) {
	parent := db.Statement.Context
	if v, ok := db.InstanceGet(statementDeadlineKey); ok {
		if prev, ok := v.(statementDeadline); ok {
			parent = prev.parent
		}
	}
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithTimeout(parent, p.Timeout)
	db.Statement.Context = ctx
	db.InstanceSet(statementDeadlineKey, statementDeadline{parent: parent, cancel: cancel})
}

func finish(db *gorm.DB) {
	v, ok := db.InstanceGet(statementDeadlineKey)
	if !ok {
		return
	}
	if d, ok := v.(statementDeadline); ok {
		d.cancel()
		db.Statement.Context = d.parent
	}
}
