package repository

import (
	"context"

	"gorm.io/gorm"
)

func updateColumns(ctx context.Context, db *gorm.DB, value interface{}, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		ok, err := existsByID(ctx, db, value, id)
		if err != nil {
			return err
		}
		if !ok {
			return gorm.ErrRecordNotFound
		}
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := existsByID(ctx, tx, value, id)
		if err != nil {
			return err
		}
		if !ok {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(value).Where("id = ?", id).Updates(fields).Error
	})
}

func deleteByID(ctx context.Context, db *gorm.DB, value interface{}, id uint) error {
	result := db.WithContext(ctx).Delete(value, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func existsByID(ctx context.Context, db *gorm.DB, value interface{}, id uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(value).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
