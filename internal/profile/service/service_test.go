package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"siteadmin/internal/profile/datatypes"
	"siteadmin/internal/profile/models"
	"siteadmin/internal/profile/store"
	id "siteadmin/pkg/domain"
	dErrors "siteadmin/pkg/domain-errors"
)

type FieldRegistrySuite struct {
	suite.Suite
	store    *store.InMemory
	registry *Registry
	ctx      context.Context
	tenant   id.TenantID
}

func (s *FieldRegistrySuite) SetupTest() {
	s.store = store.NewInMemory()
	s.registry = New(s.store, datatypes.Static{})
	s.ctx = context.Background()
	s.tenant = id.TenantID(uuid.New())
}

func TestFieldRegistrySuite(t *testing.T) {
	suite.Run(t, new(FieldRegistrySuite))
}

func (s *FieldRegistrySuite) textDraft(name string) Draft {
	return Draft{
		Name:              name,
		DataType:          datatypes.CodeText,
		Length:            50,
		Visible:           true,
		DefaultVisibility: models.VisibilityAdminOnly,
	}
}

func (s *FieldRegistrySuite) addField(draft Draft) *models.FieldDefinition {
	field, err := s.registry.Add(s.ctx, s.tenant, draft, false)
	s.Require().NoError(err)
	return field
}

func (s *FieldRegistrySuite) TestAdd() {
	s.Run("persists a valid draft", func() {
		field := s.addField(s.textDraft("Biography"))
		s.Equal("Biography", field.Name)
		s.Equal(datatypes.CodeText, field.DataType)
	})

	s.Run("rejects blank name", func() {
		_, err := s.registry.Add(s.ctx, s.tenant, s.textDraft("   "), false)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects required text field with zero length", func() {
		draft := s.textDraft("Motto")
		draft.Required = true
		draft.Length = 0

		_, err := s.registry.Add(s.ctx, s.tenant, draft, false)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeRequiredField))
	})

	s.Run("required text field with a length is accepted", func() {
		draft := s.textDraft("Slogan")
		draft.Required = true
		draft.Length = 100

		field := s.addField(draft)
		s.True(field.Required)
	})

	s.Run("non-text types carry no length rule", func() {
		draft := Draft{
			Name:              "Birthday",
			DataType:          datatypes.CodeDate,
			Required:          true,
			DefaultVisibility: models.VisibilityPublic,
		}
		field := s.addField(draft)
		s.True(field.Required)
	})

	s.Run("unknown data-type code carries no structural rule", func() {
		draft := Draft{
			Name:              "Mystery",
			DataType:          999999,
			Required:          true,
			DefaultVisibility: models.VisibilityPublic,
		}
		field := s.addField(draft)
		s.True(field.Required)
	})

	s.Run("privileged actor has required forced off", func() {
		draft := s.textDraft("HostField")
		draft.Required = true

		field, err := s.registry.Add(s.ctx, s.tenant, draft, true)
		s.Require().NoError(err)
		s.False(field.Required, "privileged add must clear the required flag")
	})

	s.Run("privileged override also bypasses the text length rule", func() {
		draft := s.textDraft("HostText")
		draft.Required = true
		draft.Length = 0

		field, err := s.registry.Add(s.ctx, s.tenant, draft, true)
		s.Require().NoError(err)
		s.False(field.Required)
	})

	s.Run("capability is an explicit input, not ambient context", func() {
		draft := s.textDraft("ExplicitCap")
		draft.Required = true

		field, err := s.registry.Add(s.ctx, s.tenant, draft, false)
		s.Require().NoError(err)
		s.True(field.Required, "an unprivileged add keeps the requested flag regardless of context")
	})

	s.Run("rejects duplicate name case-insensitively", func() {
		s.addField(s.textDraft("Occupation"))

		_, err := s.registry.Add(s.ctx, s.tenant, s.textDraft("OCCUPATION"), false)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeDuplicateName))
	})

	s.Run("same name in another tenant is allowed", func() {
		s.addField(s.textDraft("Website"))

		other := id.TenantID(uuid.New())
		_, err := s.registry.Add(s.ctx, other, s.textDraft("Website"), false)
		s.NoError(err)
	})

	s.Run("rejects out-of-range visibility", func() {
		draft := s.textDraft("BadVisibility")
		draft.DefaultVisibility = models.Visibility(9)

		_, err := s.registry.Add(s.ctx, s.tenant, draft, false)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *FieldRegistrySuite) TestUpdate() {
	s.Run("saving without renaming is not a self-collision", func() {
		field := s.addField(s.textDraft("City"))

		draft := s.textDraft("City")
		draft.Category = "Location"
		updated, err := s.registry.Update(s.ctx, s.tenant, field.ID, draft)
		s.Require().NoError(err)
		s.Equal("Location", updated.Category)
	})

	s.Run("rejects rename onto another field's name", func() {
		s.addField(s.textDraft("Taken"))
		field := s.addField(s.textDraft("Mine"))

		_, err := s.registry.Update(s.ctx, s.tenant, field.ID, s.textDraft("taken"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeDuplicateName))
	})

	s.Run("privileged override does not apply on update", func() {
		field := s.addField(s.textDraft("Editable"))

		draft := s.textDraft("Editable")
		draft.Required = true
		updated, err := s.registry.Update(s.ctx, s.tenant, field.ID, draft)
		s.Require().NoError(err)
		s.True(updated.Required, "update keeps the requested required flag")
	})

	s.Run("validation applies on update", func() {
		field := s.addField(s.textDraft("Shrinking"))

		draft := s.textDraft("Shrinking")
		draft.Required = true
		draft.Length = 0
		_, err := s.registry.Update(s.ctx, s.tenant, field.ID, draft)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeRequiredField))
	})

	s.Run("returns NotFound for unknown field", func() {
		_, err := s.registry.Update(s.ctx, s.tenant, id.NewFieldID(), s.textDraft("Ghost"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("field of another tenant is NotFound", func() {
		field := s.addField(s.textDraft("Scoped"))

		other := id.TenantID(uuid.New())
		_, err := s.registry.Update(s.ctx, other, field.ID, s.textDraft("Scoped"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *FieldRegistrySuite) TestDelete() {
	s.Run("deletes an ordinary field", func() {
		field := s.addField(s.textDraft("Disposable"))

		s.Require().NoError(s.registry.Delete(s.ctx, s.tenant, field.ID))

		_, err := s.registry.Get(s.ctx, s.tenant, field.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("protected names are not deletable regardless of case", func() {
		for _, name := range []string{"LastName", "lastname", "FIRSTNAME", "PreferredTimeZone", "preferredlocale"} {
			tenant := id.TenantID(uuid.New())
			field, err := s.registry.Add(s.ctx, tenant, s.textDraft(name), false)
			s.Require().NoError(err)

			err = s.registry.Delete(s.ctx, tenant, field.ID)
			s.Require().Error(err, "name %q must be protected", name)
			s.True(dErrors.HasCode(err, dErrors.CodeForbiddenDelete))
		}
	})

	s.Run("protection applies to every actor", func() {
		field := s.addField(s.textDraft("PreferredLocale"))

		err := s.registry.Delete(s.ctx, s.tenant, field.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbiddenDelete))
	})

	s.Run("custom protected-name set replaces the default", func() {
		registry := New(s.store, datatypes.Static{}, WithProtectedNames([]string{"EmployeeID"}))
		tenant := id.TenantID(uuid.New())

		protected, err := registry.Add(s.ctx, tenant, s.textDraft("EmployeeID"), false)
		s.Require().NoError(err)
		err = registry.Delete(s.ctx, tenant, protected.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbiddenDelete))

		unprotected, err := registry.Add(s.ctx, tenant, s.textDraft("LastName"), false)
		s.Require().NoError(err)
		s.NoError(registry.Delete(s.ctx, tenant, unprotected.ID))
	})
}

func (s *FieldRegistrySuite) TestList() {
	s.Run("orders by view order and reports deletion hints", func() {
		second := s.textDraft("Second")
		second.ViewOrder = 2
		first := s.textDraft("FirstName")
		first.ViewOrder = 1
		s.addField(second)
		s.addField(first)

		views, err := s.registry.List(s.ctx, s.tenant)
		s.Require().NoError(err)
		s.Require().Len(views, 2)
		s.Equal("FirstName", views[0].Name)
		s.False(views[0].CanDelete, "protected name is flagged undeletable")
		s.True(views[1].CanDelete)
	})
}
