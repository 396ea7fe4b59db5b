package repository

import "errors"

// ErrDuplicateEmail 唯一索引冲突（email 列）
// 依赖 gorm.Config.TranslateError 把各驱动的冲突错误规范化为 gorm.ErrDuplicatedKey
var ErrDuplicateEmail = errors.New("duplicate email")
