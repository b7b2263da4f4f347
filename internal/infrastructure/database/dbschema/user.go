package dbschema

import (
	"djigbo-server/internal/domain/user"
	"djigbo-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User persists a registered profile tied to the external identity provider.
// Avatar holds a base64 image data URL, hence text.
type User struct {
	BaseModel
	Auth0UserID string  `gorm:"column:auth0_user_id;type:varchar(255);not null;uniqueIndex"`
	Nickname    string  `gorm:"type:varchar(50);not null"`
	Avatar      *string `gorm:"type:text"`
}

func (User) TableName() string {
	return "users"
}

// NewSchemaUser converts a domain profile into a schema instance.
func NewSchemaUser(p *user.Profile) *User {
	if p == nil {
		return nil
	}
	return &User{
		BaseModel: BaseModel{
			ID:        p.ID,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
		Auth0UserID: p.Auth0UserID,
		Nickname:    p.Nickname,
		Avatar:      p.Avatar,
	}
}

// EtoD converts a schema row back to the domain representation.
func (u *User) EtoD() *user.Profile {
	if u == nil {
		return nil
	}
	return &user.Profile{
		ID:          u.ID,
		Auth0UserID: u.Auth0UserID,
		Nickname:    u.Nickname,
		Avatar:      u.Avatar,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
