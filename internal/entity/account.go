package entity

import "time"

const (
	AccountRoleAdmin = "admin"
	AccountRoleUser  = "user"
)

// Gender values stored on the account record.
const (
	GenderUnknown int8 = 0
	GenderMale    int8 = 1
	GenderFemale  int8 = 2
)

// DbAccount represents a persisted account. The uuid is assigned once at
// creation and is the external, URL-safe way to address the record; name is
// the immutable login key.
type DbAccount struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UUID         string    `gorm:"column:uuid;type:char(36);uniqueIndex;not null" json:"uuid"`
	Name         string    `gorm:"column:name;type:varchar(100);uniqueIndex;not null" json:"name"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Mobile       string    `gorm:"column:mobile;type:varchar(32);uniqueIndex;not null" json:"mobile"`
	Gender       int8      `gorm:"column:gender;not null;default:0" json:"gender"`
	Role         string    `gorm:"column:role;type:varchar(50);index;not null" json:"role"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
}

// TableName overrides default pluralised name.
func (DbAccount) TableName() string {
	return "accounts"
}

// DbAccountProfile is the 1:1 extension record of an account. It is created
// and deleted in the same transaction as its account row.
type DbAccountProfile struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Company   string    `gorm:"column:company;type:varchar(255)" json:"company"`
	Position  string    `gorm:"column:position;type:varchar(255)" json:"position"`
	Address   string    `gorm:"column:address;type:varchar(255)" json:"address"`
	Avatar    string    `gorm:"column:avatar;type:varchar(255)" json:"avatar"`
	Birthday  string    `gorm:"column:birthday;type:varchar(32)" json:"birthday"`
}

// TableName overrides default pluralised name.
func (DbAccountProfile) TableName() string {
	return "account_profiles"
}

// AccountSummary is a lightweight account description returned in listings.
// It never carries the password hash.
type AccountSummary struct {
	ID        uint      `json:"id"`
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	Gender    int8      `json:"gender"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountDetail is the joined account+profile view returned after create,
// update, and single-record reads.
type AccountDetail struct {
	AccountSummary
	Company  string `json:"company"`
	Position string `json:"position"`
	Address  string `json:"address"`
	Avatar   string `json:"avatar"`
	Birthday string `json:"birthday"`
}

// MakeAccountSummary builds the public view of an account record.
func MakeAccountSummary(acct *DbAccount) AccountSummary {
	if acct == nil {
		return AccountSummary{}
	}
	return AccountSummary{
		ID:        acct.ID,
		UUID:      acct.UUID,
		Name:      acct.Name,
		Email:     acct.Email,
		Mobile:    acct.Mobile,
		Gender:    acct.Gender,
		Role:      acct.Role,
		IsActive:  acct.IsActive,
		CreatedAt: acct.CreatedAt,
		UpdatedAt: acct.UpdatedAt,
	}
}

// MakeAccountDetail builds the joined public view. A nil profile yields
// empty profile fields rather than a crash.
func MakeAccountDetail(acct *DbAccount, profile *DbAccountProfile) AccountDetail {
	detail := AccountDetail{AccountSummary: MakeAccountSummary(acct)}
	if profile != nil {
		detail.Company = profile.Company
		detail.Position = profile.Position
		detail.Address = profile.Address
		detail.Avatar = profile.Avatar
		detail.Birthday = profile.Birthday
	}
	return detail
}
