package controllers

import (
	"github.com/Edmundtutu/foody-sub002/pkg/resp"
	"github.com/Edmundtutu/foody-sub002/services"
	"github.com/gin-gonic/gin"
)

type ComboController struct {
	Combos     *services.ComboService
	Structure  *services.ComboStructureService
	Pricing    *services.ComboPricingService
	Selections *services.ComboSelectionService
}

func NewComboController(combos *services.ComboService, structure *services.ComboStructureService, pricing *services.ComboPricingService, selections *services.ComboSelectionService) *ComboController {
	return &ComboController{Combos: combos, Structure: structure, Pricing: pricing, Selections: selections}
}

// GET /restaurants/:id/combos
func (ctl *ComboController) ListByRestaurant(c *gin.Context) {
	restID, ok := paramID(c, "id")
	if !ok {
		return
	}
	combos, err := ctl.Combos.ListByRestaurant(c.Request.Context(), restID)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": combos})
}

// GET /combos/:id
func (ctl *ComboController) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	combo, err := ctl.Combos.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, combo)
}

// POST /partner/restaurant/combos
func (ctl *ComboController) Create(c *gin.Context) {
	var req services.CreateComboReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	combo, err := ctl.Combos.Create(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, combo)
}

// PATCH /partner/restaurant/combos/:id
func (ctl *ComboController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateComboReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	combo, err := ctl.Combos.Update(c.Request.Context(), actorFrom(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, combo)
}

// DELETE /partner/restaurant/combos/:id
func (ctl *ComboController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Combos.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "combo deleted"})
}

// PUT /partner/restaurant/combos/:id/structure
func (ctl *ComboController) SyncStructure(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.StructureReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	combo, err := ctl.Structure.Reconcile(c.Request.Context(), actorFrom(c), id, req.Groups)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, combo)
}

// POST /combos/:id/calculate
func (ctl *ComboController) Calculate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.CalculateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	_, res, err := ctl.Pricing.Calculate(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, res)
}

// POST /combos/:id/selections
func (ctl *ComboController) CreateSelection(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.CalculateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	sel, err := ctl.Selections.Create(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, sel)
}

// GET /combo-selections/:id
func (ctl *ComboController) GetSelection(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	sel, err := ctl.Selections.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, sel)
}
