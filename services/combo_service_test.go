package services

import (
	"context"
	"testing"

	"github.com/Edmundtutu/foody-sub002/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestComboServiceCreate(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	off := false

	c, err := w.comboSvc.Create(ctx, w.ownerActor(), &CreateComboReq{
		RestaurantID: w.rest.ID, Name: "  Breakfast  ", PricingMode: entity.PricingFixed, BasePrice: 9000, Available: &off,
	})
	require.NoError(t, err)
	assert.Equal(t, "Breakfast", c.Name)
	assert.False(t, c.Available)
	assert.Empty(t, c.Groups)

	_, err = w.comboSvc.Create(ctx, w.ownerActor(), &CreateComboReq{
		RestaurantID: w.rest.ID, Name: "", PricingMode: "BUNDLE", BasePrice: -1,
	})
	var ve ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.ElementsMatch(t, []string{"name", "pricing_mode", "base_price"}, keys(ve.Fields()))

	_, err = w.comboSvc.Create(ctx, w.ownerActor(), &CreateComboReq{
		RestaurantID: w.other.ID, Name: "Nope", PricingMode: entity.PricingFixed,
	})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = w.comboSvc.Create(ctx, w.ownerActor(), &CreateComboReq{
		RestaurantID: 777, Name: "Nope", PricingMode: entity.PricingFixed,
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestComboServiceCreateWithInvalidGroupsWritesNothing(t *testing.T) {
	w := newWorld(t)
	groups := []GroupInput{{Name: "Mains", AllowedMin: 3, AllowedMax: 1}}

	_, err := w.comboSvc.Create(context.Background(), w.ownerActor(), &CreateComboReq{
		RestaurantID: w.rest.ID, Name: "Lunch", PricingMode: entity.PricingDynamic, Groups: &groups,
	})

	var ve ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has(KindInvalidGroupBounds))
	var n int64
	require.NoError(t, w.db.Model(&entity.Combo{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestComboServiceUpdate(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	rice := w.dish(t, w.rest.ID, "Rice", 5000)
	c := w.combo(t, entity.PricingFixed, 10000,
		GroupInput{Name: "Mains", AllowedMin: 1, AllowedMax: 1, Items: items(ItemInput{DishID: rice.ID})})

	mode := entity.PricingHybrid
	base := int64(12000)
	out, err := w.comboSvc.Update(ctx, w.ownerActor(), c.ID, &UpdateComboReq{PricingMode: &mode, BasePrice: &base})
	require.NoError(t, err)
	assert.Equal(t, entity.PricingHybrid, out.PricingMode)
	assert.Equal(t, int64(12000), out.BasePrice)
	assert.Equal(t, "Lunch Combo", out.Name)
	require.Len(t, out.Groups, 1, "structure untouched without groups")

	empty := []GroupInput{}
	out, err = w.comboSvc.Update(ctx, w.ownerActor(), c.ID, &UpdateComboReq{Groups: &empty})
	require.NoError(t, err)
	assert.Empty(t, out.Groups)

	blank := " "
	_, err = w.comboSvc.Update(ctx, w.ownerActor(), c.ID, &UpdateComboReq{Name: &blank})
	var ve ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields(), "name")

	_, err = w.comboSvc.Update(ctx, Actor{UserID: w.stranger.ID, Role: entity.RoleOwner}, c.ID, &UpdateComboReq{BasePrice: &base})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestComboServiceDeleteAndList(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	keep := w.combo(t, entity.PricingFixed, 1000)
	gone := w.combo(t, entity.PricingFixed, 2000)
	hidden := w.combo(t, entity.PricingFixed, 3000)
	off := false
	_, err := w.comboSvc.Update(ctx, w.ownerActor(), hidden.ID, &UpdateComboReq{Available: &off})
	require.NoError(t, err)

	require.NoError(t, w.comboSvc.Delete(ctx, w.ownerActor(), gone.ID))

	list, err := w.comboSvc.ListByRestaurant(ctx, w.rest.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)

	_, err = w.comboSvc.Get(ctx, gone.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var n int64
	require.NoError(t, w.db.Unscoped().Model(&entity.Combo{}).Where("id = ?", gone.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n, "combos are soft-deleted")

	assert.ErrorIs(t, w.comboSvc.Delete(ctx, w.customerActor(), keep.ID), ErrForbidden)
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
