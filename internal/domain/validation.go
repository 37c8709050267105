package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var skuRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Имя: непустое, до 200 символов.
func ValidName(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && utf8.RuneCountInString(s) <= 200
}

func ValidSKU(s string) bool {
	return skuRe.MatchString(s)
}

func (d CategoryDraft) Validate() error {
	if !ValidName(d.Name) {
		return ErrBadParams
	}
	return nil
}

func (d ProductDraft) Validate() error {
	if !ValidName(d.Name) || !ValidSKU(d.SKU) {
		return ErrBadParams
	}
	if d.CategoryID < 1 || d.PriceCents < 0 || d.Stock < 0 {
		return ErrBadParams
	}
	return nil
}

func (p CategoryPatch) Validate() error {
	if p.Name == nil && p.Description == nil {
		return ErrBadParams // пустой патч
	}
	if p.Name != nil && !ValidName(*p.Name) {
		return ErrBadParams
	}
	return nil
}

func (p ProductPatch) Validate() error {
	if p.CategoryID == nil && p.Name == nil && p.Description == nil &&
		p.SKU == nil && p.PriceCents == nil && p.Stock == nil {
		return ErrBadParams
	}
	if p.Name != nil && !ValidName(*p.Name) {
		return ErrBadParams
	}
	if p.SKU != nil && !ValidSKU(*p.SKU) {
		return ErrBadParams
	}
	if p.CategoryID != nil && *p.CategoryID < 1 {
		return ErrBadParams
	}
	if p.PriceCents != nil && *p.PriceCents < 0 {
		return ErrBadParams
	}
	if p.Stock != nil && *p.Stock < 0 {
		return ErrBadParams
	}
	return nil
}
