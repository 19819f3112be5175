// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shelf_backend/internal/feature/auth/domain/entity"
	"shelf_backend/internal/feature/auth/usecase"
)

// operatorGorm はOperatorRepositoryインターフェースのGORM実装です。
// TranslateErrorを有効にした接続を前提とし、重複キーはドライバー非依存で検出します。
type operatorGorm struct {
	db *gorm.DB
}

// operatorGormがOperatorRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.OperatorRepository = (*operatorGorm)(nil)

// NewOperatorGorm は指定されたgorm.DB接続でoperatorGormの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewOperatorGorm(db *gorm.DB) *operatorGorm {
	return &operatorGorm{db: db}
}

// Create はオペレーターをデータベースに追加します。
// 同じメールアドレスのオペレーターが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *operatorGorm) Create(ctx context.Context, o *entity.Operator) error {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでオペレーターを取得します。
// オペレーターが存在しない場合、usecase.ErrOperatorNotFoundを返します。
func (r *operatorGorm) FindByEmail(ctx context.Context, email string) (*entity.Operator, error) {
	var o entity.Operator
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrOperatorNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByID はIDでオペレーターを取得します。
// オペレーターが存在しない場合、usecase.ErrOperatorNotFoundを返します。
func (r *operatorGorm) FindByID(ctx context.Context, id uint) (*entity.Operator, error) {
	var o entity.Operator
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrOperatorNotFound
		}
		return nil, err
	}
	return &o, nil
}
