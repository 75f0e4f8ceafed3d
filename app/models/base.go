// Package models defines the persisted entities of the store: catalog
// (products, categories), orders, and users/roles. Every entity embeds Base
// and therefore carries identity, the soft-delete flag, and UTC timestamps
// maintained by GORM hooks.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Base holds the attributes shared by every persisted entity. IsDeleted is
// the soft-delete marker: default reads exclude flagged rows, and rows are
// only physically removed by an explicit hard delete.
type Base struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	IsDeleted  bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	ModifiedAt time.Time `gorm:"not null" json:"modified_at"`
}

// SoftDeleted satisfies orm.SoftDeletable.
func (b Base) SoftDeleted() bool { return b.IsDeleted }

// Touch refreshes ModifiedAt. Services call it before staging an update so
// the timestamp reflects the mutation even if the row is written verbatim.
func (b *Base) Touch() { b.ModifiedAt = time.Now().UTC() }

// BeforeCreate stamps both timestamps in UTC. CreatedAt is preserved when a
// caller (seeders, tests) supplied one explicitly.
func (b *Base) BeforeCreate(*gorm.DB) error {
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.ModifiedAt.IsZero() {
		b.ModifiedAt = now
	}
	return nil
}

// BeforeUpdate refreshes ModifiedAt on every mutation.
func (b *Base) BeforeUpdate(*gorm.DB) error {
	b.ModifiedAt = time.Now().UTC()
	return nil
}
