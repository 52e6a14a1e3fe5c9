package repo

import (
	"fmt"

	"gorm.io/gorm"
)

type GormDBCli struct {
	db *gorm.DB
	// inTx 表示 db 本身已处于事务中，此时不再自行 Begin/Commit
	inTx bool
}

type InterGormDBCli interface {
	Create(table, value interface{}) error
	Updates(value Updates) error
	Delete(value Delete) error
}

func NewInterGormDBCli(db *gorm.DB) InterGormDBCli {
	return &GormDBCli{
		db: db,
	}
}

// newTxGormDBCli 基于已开启的事务句柄创建，写操作直接复用该事务
func newTxGormDBCli(tx *gorm.DB) InterGormDBCli {
	return &GormDBCli{
		db:   tx,
		inTx: true,
	}
}

// Create 插入数据，value 必须是指针类型
func (g GormDBCli) Create(table, value interface{}) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		return tx.Model(table).Create(value).Error
	}, "数据写入失败")
}

// Updates 更新数据
func (g GormDBCli) Updates(value Updates) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		tx = tx.Model(value.Table)
		for column, val := range value.Where {
			tx = tx.Where(column, val)
		}
		return tx.Updates(value.Updates).Error
	}, "数据更新失败")
}

// Delete 删除数据
func (g GormDBCli) Delete(value Delete) error {
	return g.executeTransaction(func(tx *gorm.DB) error {
		tx = tx.Model(value.Table)
		for column, val := range value.Where {
			tx = tx.Where(column, val)
		}
		return tx.Delete(value.Table).Error
	}, "数据删除失败")
}

// executeTransaction 执行事务并处理错误
// 已处于外层事务时直接在其上执行，由外层统一提交或回滚
func (g GormDBCli) executeTransaction(operation func(tx *gorm.DB) error, errorMessage string) error {
	if g.inTx {
		if err := operation(g.db); err != nil {
			return fmt.Errorf("%s -> %s", errorMessage, err)
		}
		return nil
	}

	tx := g.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("事务启动失败, err: %s", tx.Error)
	}

	if err := operation(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("%s -> %s", errorMessage, err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("事务提交失败, err: %s", err)
	}

	return nil
}

// Updates 定义更新数据的结构
type Updates struct {
	Table   interface{}
	Where   map[string]interface{}
	Updates interface{}
}

// Delete 定义删除数据的结构
type Delete struct {
	Table interface{}
	Where map[string]interface{}
}
