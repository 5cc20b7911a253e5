package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	contactdomain "github.com/rahvarz/bazar/internal/contact/domain"
	"gorm.io/gorm"
)

// defaultContactTypes are the bilingual channel labels every deployment
// starts with.
var defaultContactTypes = []contactdomain.ContactType{
	{NameEN: "phone", NameFA: "تلفن"},
	{NameEN: "email", NameFA: "ایمیل"},
	{NameEN: "telegram", NameFA: "تلگرام"},
	{NameEN: "instagram", NameFA: "اینستاگرام"},
	{NameEN: "whatsapp", NameFA: "واتس‌اپ"},
	{NameEN: "website", NameFA: "وب‌سایت"},
}

// EnsureContactTypes inserts any missing default contact types. Existing
// rows keep their ids; the seed is idempotent.
func EnsureContactTypes(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ct := range defaultContactTypes {
			var existing contactdomain.ContactType
			err := tx.Where("name_en = ?", ct.NameEN).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			ct.ID = node.Generate().Int64()
			if err := tx.Create(&ct).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
