package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/models"
	"github.com/verlow/clientele/internal/store"
)

// Tag commands address one of the two independent namespaces: contact
// tags or sale tags. SaleTag selects the namespace.

// AddTag registers a tag name in a namespace.
type AddTag struct {
	Name    models.TagName
	SaleTag bool
}

func (c AddTag) Execute(s *store.Store) (*Result, error) {
	add := s.AddContactTag
	if c.SaleTag {
		add = s.AddSaleTag
	}
	if err := add(c.Name); err != nil {
		return nil, apperr.CommandWrap(err, MsgDuplicateTag)
	}
	return mutated(models.GroupTag, "New %s tag added: %s", namespace(c.SaleTag), c.Name), nil
}

// EditTag renames the tag at a display index within its namespace,
// cascading to every record that carried the old name.
type EditTag struct {
	Index   models.Index
	SaleTag bool
	NewName models.TagName
}

func (c EditTag) Execute(s *store.Store) (*Result, error) {
	old, err := resolveTag(s, c.Index, c.SaleTag)
	if err != nil {
		return nil, err
	}
	rename := s.RenameContactTag
	if c.SaleTag {
		rename = s.RenameSaleTag
	}
	if err := rename(old, c.NewName); err != nil {
		if errors.Is(err, apperr.ErrDuplicate) {
			return nil, apperr.CommandWrap(err, MsgDuplicateTag)
		}
		return nil, apperr.CommandWrap(err, MsgInvalidTagIndex)
	}
	result := mutated(models.GroupTag, "Edited %s tag: %s is now %s", namespace(c.SaleTag), old, c.NewName)
	if c.SaleTag {
		result.Mutated = append(result.Mutated, models.GroupSale)
	} else {
		result.Mutated = append(result.Mutated, models.GroupContact)
	}
	return result, nil
}

// DeleteTag removes the tag at a display index within its namespace,
// stripping it from every record that carried it.
type DeleteTag struct {
	Index   models.Index
	SaleTag bool
}

func (c DeleteTag) Execute(s *store.Store) (*Result, error) {
	target, err := resolveTag(s, c.Index, c.SaleTag)
	if err != nil {
		return nil, err
	}
	remove := s.RemoveContactTag
	affected := models.GroupContact
	if c.SaleTag {
		remove = s.RemoveSaleTag
		affected = models.GroupSale
	}
	if err := remove(target); err != nil {
		return nil, apperr.CommandWrap(err, MsgInvalidTagIndex)
	}
	result := mutated(models.GroupTag, "Deleted %s tag: %s", namespace(c.SaleTag), target)
	result.Mutated = append(result.Mutated, affected)
	return result, nil
}

// ListTags shows both namespaces.
type ListTags struct{}

func (ListTags) Execute(s *store.Store) (*Result, error) {
	return feedback("Contact tags: %s\nSale tags: %s",
		renderTags(s.ContactTags()), renderTags(s.SaleTags())), nil
}

// FindByTag reports the records carrying a tag: a contact count for the
// contact namespace, the matching sales for the sale namespace.
type FindByTag struct {
	Name    models.TagName
	SaleTag bool
}

func (c FindByTag) Execute(s *store.Store) (*Result, error) {
	if c.SaleTag {
		if !s.HasSaleTag(c.Name) {
			return nil, apperr.CommandWrap(apperr.ErrNotFound, "no sale tag named %s", c.Name)
		}
		sales := s.SalesByTag(c.Name)
		lines := make([]string, len(sales))
		for i, sale := range sales {
			lines[i] = fmt.Sprintf("%d. %s", i+1, sale)
		}
		return feedback("%d sales tagged %s:\n%s", len(sales), c.Name, strings.Join(lines, "\n")), nil
	}
	if !s.HasContactTag(c.Name) {
		return nil, apperr.CommandWrap(apperr.ErrNotFound, "no contact tag named %s", c.Name)
	}
	return feedback("%d contacts tagged %s", s.CountByContactTag(c.Name), c.Name), nil
}

func resolveTag(s *store.Store, idx models.Index, saleTag bool) (models.TagName, error) {
	tags := s.ContactTags()
	if saleTag {
		tags = s.SaleTags()
	}
	if idx.ZeroBased() >= len(tags) {
		return "", apperr.Command(MsgInvalidTagIndex)
	}
	return tags[idx.ZeroBased()], nil
}

func namespace(saleTag bool) string {
	if saleTag {
		return "sale"
	}
	return "contact"
}

func renderTags(tags []models.TagName) string {
	if len(tags) == 0 {
		return "[]"
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}
