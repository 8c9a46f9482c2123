package inventory

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.etcd.io/bbolt"

	"github.com/corelia/retail-intel/internal/store"
)

var _ = Describe("BoltDB", func() {
	var (
		handle *bbolt.DB
		db     *BoltDB
	)

	BeforeEach(func() {
		dbPath := filepath.Join(GinkgoT().TempDir(), "test.db")
		var err error
		handle, err = store.Open(dbPath)
		Expect(err).NotTo(HaveOccurred())
		db, err = NewBoltDB(handle)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if handle != nil {
			handle.Close()
		}
	})

	newItem := func(id, name, owner, shopID string) *Item {
		return &Item{
			ID:         id,
			Name:       name,
			Category:   "milk",
			Price:      3.99,
			Stock:      5,
			OwnerEmail: owner,
			ShopID:     shopID,
			ExpiryDate: time.Now().UTC().AddDate(0, 0, 7),
			CreatedAt:  time.Now().UTC(),
			UpdatedAt:  time.Now().UTC(),
		}
	}

	Describe("SaveItem", func() {
		It("persists the item", func() {
			Expect(db.SaveItem(newItem("i1", "Milk", "alice@corelia.dev", ""))).To(Succeed())

			saved, err := db.GetItem("i1")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.Name).To(Equal("Milk"))
			Expect(saved.Price).To(Equal(3.99))
		})

		It("overwrites on repeated saves", func() {
			item := newItem("i1", "Milk", "alice@corelia.dev", "")
			Expect(db.SaveItem(item)).To(Succeed())
			item.Stock = 2
			Expect(db.SaveItem(item)).To(Succeed())

			saved, err := db.GetItem("i1")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.Stock).To(Equal(2))
		})
	})

	Describe("GetItem", func() {
		It("errors for a missing item", func() {
			_, err := db.GetItem("nonexistent")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("item not found"))
		})
	})

	Describe("ListItems", func() {
		BeforeEach(func() {
			Expect(db.SaveItem(newItem("i1", "Milk", "alice@corelia.dev", ""))).To(Succeed())
			Expect(db.SaveItem(newItem("i2", "Bread", "alice@corelia.dev", ""))).To(Succeed())
			Expect(db.SaveItem(newItem("i3", "Eggs", "bob@corelia.dev", ""))).To(Succeed())
		})

		It("returns only the owner's items", func() {
			items, err := db.ListItems("alice@corelia.dev")
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(2))
		})

		It("returns an empty list for an unknown owner", func() {
			items, err := db.ListItems("stranger@corelia.dev")
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(BeEmpty())
		})
	})

	Describe("ListByShop", func() {
		BeforeEach(func() {
			Expect(db.SaveItem(newItem("i1", "Milk", "alice@corelia.dev", "shop-1"))).To(Succeed())
			Expect(db.SaveItem(newItem("i2", "Bread", "alice@corelia.dev", "shop-2"))).To(Succeed())
		})

		It("returns only the shop's items", func() {
			items, err := db.ListByShop("shop-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].Name).To(Equal("Milk"))
		})
	})

	Describe("DeleteItem", func() {
		BeforeEach(func() {
			Expect(db.SaveItem(newItem("i1", "Milk", "alice@corelia.dev", ""))).To(Succeed())
		})

		It("removes the item", func() {
			Expect(db.DeleteItem("i1")).To(Succeed())
			_, err := db.GetItem("i1")
			Expect(err).To(HaveOccurred())
		})

		It("does not error for a missing item", func() {
			Expect(db.DeleteItem("nonexistent")).To(Succeed())
		})
	})
})
