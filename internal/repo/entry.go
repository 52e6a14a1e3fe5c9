package repo

import (
	"gorm.io/gorm"
)

type (
	entryRepo struct {
		g  InterGormDBCli
		db *gorm.DB
	}

	// InterEntryRepo 数据访问层入口
	// 显式持有存储句柄，所有仓库实例都从这里派生，不使用进程级单例
	InterEntryRepo interface {
		Server() InterServerRepo
		Application() InterApplicationRepo
		Service() InterServiceRepo
		Dependency() InterDependencyRepo
		DiscoveryHistory() InterDiscoveryHistoryRepo
		AuditLog() InterAuditLogRepo

		// Txn 在一个数据库事务内执行 fn，fn 中通过事务版仓库入口读写
		// fn 返回错误时整体回滚
		Txn(fn func(tx InterEntryRepo) error) error
	}
)

// NewRepoEntry 创建数据访问层入口
func NewRepoEntry(db *gorm.DB) InterEntryRepo {
	return &entryRepo{
		g:  NewInterGormDBCli(db),
		db: db,
	}
}

func (e *entryRepo) Server() InterServerRepo {
	return newServerRepoInterface(e.db, e.g)
}

func (e *entryRepo) Application() InterApplicationRepo {
	return newApplicationRepoInterface(e.db, e.g)
}

func (e *entryRepo) Service() InterServiceRepo {
	return newServiceRepoInterface(e.db, e.g)
}

func (e *entryRepo) Dependency() InterDependencyRepo {
	return newDependencyRepoInterface(e.db, e.g)
}

func (e *entryRepo) DiscoveryHistory() InterDiscoveryHistoryRepo {
	return newDiscoveryHistoryRepoInterface(e.db, e.g)
}

func (e *entryRepo) AuditLog() InterAuditLogRepo {
	return newAuditLogRepoInterface(e.db, e.g)
}

func (e *entryRepo) Txn(fn func(tx InterEntryRepo) error) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		return fn(&entryRepo{
			g:  newTxGormDBCli(tx),
			db: tx,
		})
	})
}
