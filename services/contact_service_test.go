package services

import (
	"testing"

	"property-backend/models"
)

func TestContactCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db)

	contact := models.Contact{FullName: "  Pierre Laurent  ", Email: "pierre@example.com"}
	if err := svc.Create(&contact); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if contact.FullName != "Pierre Laurent" {
		t.Errorf("full name = %q, want trimmed", contact.FullName)
	}
	if contact.ContactType != models.ContactGuest {
		t.Errorf("type = %q, want default guest", contact.ContactType)
	}

	if err := svc.Create(&models.Contact{FullName: "   "}); err == nil || err.Error() != "full_name_required" {
		t.Errorf("err = %v, want full_name_required", err)
	}
	if err := svc.Create(&models.Contact{FullName: "X", ContactType: "alien"}); err == nil || err.Error() != "invalid_contact_type" {
		t.Errorf("err = %v, want invalid_contact_type", err)
	}
}

func TestContactGetAll(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db)

	seed := []models.Contact{
		{FullName: "Greta Johansson", Email: "greta@example.com", ContactType: models.ContactOwner},
		{FullName: "Omar Haddad", Email: "omar@example.com", ContactType: models.ContactGuest},
		{FullName: "Beach Rentals SL", Email: "info@beachrentals.example", ContactType: models.ContactAgency},
	}
	for i := range seed {
		if err := svc.Create(&seed[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	all, err := svc.GetAll("", "")
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all = %d, want 3", len(all))
	}
	// Sorted by name.
	if all[0].FullName != "Beach Rentals SL" {
		t.Errorf("first = %q, want Beach Rentals SL", all[0].FullName)
	}

	owners, err := svc.GetAll(models.ContactOwner, "")
	if err != nil {
		t.Fatalf("GetAll owners: %v", err)
	}
	if len(owners) != 1 || owners[0].FullName != "Greta Johansson" {
		t.Fatalf("owners = %+v", owners)
	}

	found, err := svc.GetAll("", "OMAR")
	if err != nil {
		t.Fatalf("GetAll search: %v", err)
	}
	if len(found) != 1 || found[0].FullName != "Omar Haddad" {
		t.Fatalf("search = %+v", found)
	}

	byEmail, err := svc.GetAll("", "beachrentals")
	if err != nil {
		t.Fatalf("GetAll email search: %v", err)
	}
	if len(byEmail) != 1 {
		t.Fatalf("email search = %+v", byEmail)
	}
}

func TestContactUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db)

	contact := models.Contact{FullName: "Eva Marsh", ContactType: models.ContactGuest}
	if err := svc.Create(&contact); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(contact.ID, map[string]interface{}{
		"phone":        "+44 7700 900",
		"contact_type": models.ContactOwner,
		"id":           999, // must be ignored
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != contact.ID {
		t.Errorf("id changed to %d", updated.ID)
	}
	if updated.Phone != "+44 7700 900" || updated.ContactType != models.ContactOwner {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := svc.Update(contact.ID, map[string]interface{}{"contact_type": "alien"}); err == nil || err.Error() != "invalid_contact_type" {
		t.Errorf("err = %v, want invalid_contact_type", err)
	}
	if _, err := svc.Update(9999, map[string]interface{}{"phone": "1"}); err == nil || err.Error() != "contact_not_found" {
		t.Errorf("err = %v, want contact_not_found", err)
	}
}

func TestContactLinks(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Villa Enlace")
	svc := NewContactService(db)

	contact := models.Contact{FullName: "Ingrid Holm", ContactType: models.ContactOwner}
	if err := svc.Create(&contact); err != nil {
		t.Fatalf("Create: %v", err)
	}

	link, err := svc.LinkProperty(contact.ID, property.ID, "owner")
	if err != nil {
		t.Fatalf("LinkProperty: %v", err)
	}
	if link.Role != "owner" {
		t.Errorf("role = %q", link.Role)
	}

	// Linking again updates the role instead of duplicating.
	relink, err := svc.LinkProperty(contact.ID, property.ID, "keyholder")
	if err != nil {
		t.Fatalf("LinkProperty again: %v", err)
	}
	if relink.ID != link.ID || relink.Role != "keyholder" {
		t.Fatalf("relink = %+v, want same link with updated role", relink)
	}
	var count int64
	if err := db.Model(&models.ContactProperty{}).Where("contact_id = ?", contact.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("links = %d, want 1", count)
	}

	loaded, err := svc.GetByID(contact.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(loaded.Properties) != 1 || loaded.Properties[0].Property.Name != "Villa Enlace" {
		t.Fatalf("loaded links = %+v", loaded.Properties)
	}

	if err := svc.UnlinkProperty(contact.ID, property.ID); err != nil {
		t.Fatalf("UnlinkProperty: %v", err)
	}
	if err := svc.UnlinkProperty(contact.ID, property.ID); err == nil || err.Error() != "link_not_found" {
		t.Fatalf("second unlink err = %v, want link_not_found", err)
	}

	if _, err := svc.LinkProperty(9999, property.ID, "owner"); err == nil || err.Error() != "contact_not_found" {
		t.Errorf("err = %v, want contact_not_found", err)
	}
	if _, err := svc.LinkProperty(contact.ID, 9999, "owner"); err == nil || err.Error() != "property_not_found" {
		t.Errorf("err = %v, want property_not_found", err)
	}
}

func TestContactDelete(t *testing.T) {
	db := newTestDB(t)
	property := makeProperty(t, db, "Villa Borrada")
	svc := NewContactService(db)

	contact := models.Contact{FullName: "Tomas Weiss"}
	if err := svc.Create(&contact); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.LinkProperty(contact.ID, property.ID, "guest"); err != nil {
		t.Fatalf("LinkProperty: %v", err)
	}

	if err := svc.Delete(contact.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(contact.ID); err == nil || err.Error() != "contact_not_found" {
		t.Fatalf("err = %v, want contact_not_found", err)
	}
	var count int64
	if err := db.Model(&models.ContactProperty{}).Where("contact_id = ?", contact.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("links left = %d, want 0", count)
	}

	if err := svc.Delete(9999); err == nil || err.Error() != "contact_not_found" {
		t.Fatalf("err = %v, want contact_not_found", err)
	}
}
