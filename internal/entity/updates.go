package entity

// AccountUpdates 账户表更新字段
type AccountUpdates struct {
	Email    *string
	Mobile   *string
	Gender   *int8
	IsActive *bool
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u AccountUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Email != nil {
		updates["email"] = *u.Email
	}
	if u.Mobile != nil {
		updates["mobile"] = *u.Mobile
	}
	if u.Gender != nil {
		updates["gender"] = *u.Gender
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u AccountUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// ProfileUpdates 扩展资料表更新字段
type ProfileUpdates struct {
	Company  *string
	Position *string
	Address  *string
	Avatar   *string
	Birthday *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u ProfileUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Company != nil {
		updates["company"] = *u.Company
	}
	if u.Position != nil {
		updates["position"] = *u.Position
	}
	if u.Address != nil {
		updates["address"] = *u.Address
	}
	if u.Avatar != nil {
		updates["avatar"] = *u.Avatar
	}
	if u.Birthday != nil {
		updates["birthday"] = *u.Birthday
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u ProfileUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
