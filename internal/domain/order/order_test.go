package order

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

// Test helpers
func createTestOrder(t *testing.T) *Order {
	t.Helper()
	return &Order{
		ID:                   "17",
		OrderNumber:          "ORD-0017",
		PartyName:            "Shree Textiles",
		DateOfOrder:          "2024-03-05",
		ExpectedDeliveryDate: "2024-03-20",
		Transport:            "VRL Logistics",
		Remarks:              "Pack in bales",
		Status:               StatusProcessing,
		CreatedAt:            "2024-03-05T10:00:00Z",
		UpdatedAt:            "2024-03-06T09:30:00Z",
		Items: []Item{
			{DesignNumber: "D-101", Color: "Navy", SizesQuantities: []SizeQuantity{{SizeM, 10}, {SizeL, 5}}},
			{DesignNumber: "D-205", Color: "Maroon", SizesQuantities: []SizeQuantity{{SizeXL, 3}}},
		},
		OrderRemarks: []Remark{{ID: "1", Remark: "Urgent"}, {ID: "2", Remark: "Call before dispatch"}},
	}
}

// ============================================
// Status / Size Tests
// ============================================

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  Status
		isValid bool
	}{
		{StatusPending, true},
		{StatusProcessing, true},
		{StatusCompleted, true},
		{StatusCancelled, true},
		{Status("shipped"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Completed ")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s)

	_, err = ParseStatus("archived")
	assert.Error(t, err)
}

func TestParseSize(t *testing.T) {
	s, err := ParseSize("xxl")
	require.NoError(t, err)
	assert.Equal(t, SizeXXL, s)

	s, err = ParseSize("3xl")
	require.NoError(t, err)
	assert.Equal(t, Size3XL, s)

	_, err = ParseSize("XS")
	assert.Error(t, err)
}

func TestSizes_Order(t *testing.T) {
	sizes := Sizes()
	assert.Equal(t, []Size{SizeS, SizeM, SizeL, SizeXL, SizeXXL, Size3XL, Size4XL}, sizes)
	sizes[0] = "changed"
	assert.Equal(t, SizeS, Sizes()[0], "catalog must not be mutable through the returned slice")
	assert.Equal(t, 0, SizeS.Rank())
	assert.Equal(t, 6, Size4XL.Rank())
	assert.Equal(t, -1, Size("XS").Rank())
}

// ============================================
// Item Tests
// ============================================

func TestItem_SetQuantity_ZeroRemovesSize(t *testing.T) {
	item := Item{DesignNumber: "D1", SizesQuantities: []SizeQuantity{{SizeS, 5}}}

	require.NoError(t, item.SetQuantity(SizeS, 0))

	assert.Empty(t, item.SizesQuantities)
	assert.False(t, item.HasSize(SizeS))
}

func TestItem_SetQuantity(t *testing.T) {
	item := Item{DesignNumber: "D1", SizesQuantities: []SizeQuantity{{SizeS, 5}, {SizeM, 2}}}

	require.NoError(t, item.SetQuantity(SizeM, 7))
	require.NoError(t, item.SetQuantity(SizeXL, 1))
	require.NoError(t, item.SetQuantity(SizeL, 0))

	assert.Equal(t, []SizeQuantity{{SizeS, 5}, {SizeM, 7}, {SizeXL, 1}}, item.SizesQuantities)
	assert.Equal(t, 13, item.TotalQuantity())
	assert.Equal(t, 7, item.Quantity(SizeM))
	assert.Equal(t, 0, item.Quantity(SizeL))
}

func TestItem_SetQuantity_DoesNotAliasCallerSlice(t *testing.T) {
	original := []SizeQuantity{{SizeS, 5}, {SizeM, 2}}
	item := Item{SizesQuantities: original}

	require.NoError(t, item.SetQuantity(SizeS, 0))

	assert.Equal(t, []SizeQuantity{{SizeM, 2}}, item.SizesQuantities)
	assert.Equal(t, SizeS, original[0].Size)
}

func TestItem_SetQuantity_Invalid(t *testing.T) {
	item := Item{}
	assert.Error(t, item.SetQuantity(Size("XS"), 1))
	assert.Error(t, item.SetQuantity(SizeS, -1))
}

func TestItem_TotalQuantity_IgnoresZero(t *testing.T) {
	item := Item{SizesQuantities: []SizeQuantity{{SizeS, 0}, {SizeM, 4}}}
	assert.Equal(t, 4, item.TotalQuantity())
	assert.True(t, item.HasQuantity())
	assert.True(t, item.HasSize(SizeS))
}

// ============================================
// Order Tests
// ============================================

func TestOrder_ToPayload_CarriesEveryField(t *testing.T) {
	o := createTestOrder(t)

	p := o.ToPayload()

	assert.Equal(t, o.PartyName, p.PartyName)
	assert.Equal(t, o.DateOfOrder, p.DateOfOrder)
	assert.Equal(t, o.ExpectedDeliveryDate, p.ExpectedDeliveryDate)
	assert.Equal(t, o.Transport, p.Transport)
	assert.Equal(t, o.Remarks, p.Remarks)
	assert.Equal(t, o.Status, p.Status)
	assert.Equal(t, o.Items, p.OrderItems)
	assert.Equal(t, []string{"Urgent", "Call before dispatch"}, p.OrderRemarks)

	p.OrderItems[0].SizesQuantities[0].Quantity = 99
	assert.Equal(t, 10, o.Items[0].SizesQuantities[0].Quantity, "payload must not share item storage")
}

func TestOrder_CompletedPayload(t *testing.T) {
	o := createTestOrder(t)

	p, err := o.CompletedPayload()
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, p.Status)
	assert.Equal(t, o.PartyName, p.PartyName)
	assert.Equal(t, o.Transport, p.Transport)
	assert.Len(t, p.OrderItems, 2)
	assert.Len(t, p.OrderRemarks, 2)
	assert.Equal(t, StatusProcessing, o.Status, "order itself is not mutated")
}

func TestOrder_CompletedPayload_Errors(t *testing.T) {
	o := createTestOrder(t)
	o.Status = StatusCompleted
	_, err := o.CompletedPayload()
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	o = createTestOrder(t)
	o.ID = ""
	_, err = o.CompletedPayload()
	assert.Error(t, err)
}

func TestOrder_Remarks(t *testing.T) {
	o := createTestOrder(t)
	assert.True(t, o.HasRemarks())
	assert.True(t, o.HasOrderRemarks())
	assert.Equal(t, 18, o.TotalQuantity())

	o.Remarks = "   "
	o.OrderRemarks = nil
	assert.False(t, o.HasRemarks())
	assert.False(t, o.HasOrderRemarks())
}

// ============================================
// Payload Tests
// ============================================

func TestPayload_Validate_RejectsEmptyOrder(t *testing.T) {
	p := Payload{
		PartyName:    "Shree Textiles",
		DateOfOrder:  "2024-03-05",
		Status:       StatusPending,
		OrderItems:   []Item{{DesignNumber: "", Color: "", SizesQuantities: []SizeQuantity{}}},
		OrderRemarks: []string{""},
	}

	err := p.Validate()

	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrEmptyOrder))
	assert.Equal(t, "Please add at least one order item with quantity or one order remark", err.Error())

	p.Normalize()
	assert.ErrorIs(t, p.Validate(), shared.ErrEmptyOrder)
}

func TestPayload_Validate_RemarksOnly(t *testing.T) {
	p := Payload{
		PartyName:    "Shree Textiles",
		DateOfOrder:  "2024-03-05",
		Status:       StatusPending,
		OrderRemarks: []string{"Send samples first"},
	}
	assert.NoError(t, p.Validate())
}

func TestPayload_Validate_FieldRules(t *testing.T) {
	base := func() Payload {
		return Payload{
			PartyName:   "Shree Textiles",
			DateOfOrder: "2024-03-05",
			Status:      StatusPending,
			OrderItems:  []Item{{DesignNumber: "D1", Color: "Red", SizesQuantities: []SizeQuantity{{SizeS, 2}}}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(p *Payload)
		wantMsg string
	}{
		{"missing party", func(p *Payload) { p.PartyName = "" }, "party_name is required"},
		{"bad date", func(p *Payload) { p.DateOfOrder = "05/03/2024" }, "date_of_order must be a date in YYYY-MM-DD form"},
		{"bad delivery date", func(p *Payload) { p.ExpectedDeliveryDate = "soon" }, "expected_delivery_date must be a date in YYYY-MM-DD form"},
		{"bad status", func(p *Payload) { p.Status = "shipped" }, "status must be one of: pending processing completed cancelled"},
		{"missing design", func(p *Payload) { p.OrderItems[0].DesignNumber = "" }, "order_items[0].design_number is required"},
		{"duplicate size", func(p *Payload) {
			p.OrderItems[0].SizesQuantities = append(p.OrderItems[0].SizesQuantities, SizeQuantity{SizeS, 1})
		}, "Design D1: size S appears more than once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}

	p := base()
	assert.NoError(t, p.Validate())
}

func TestPayload_Normalize(t *testing.T) {
	p := Payload{
		PartyName:   "  Shree Textiles ",
		DateOfOrder: "2024-03-05T00:00:00.000Z",
		OrderItems: []Item{
			{},
			{DesignNumber: " D1 ", Color: "Red", SizesQuantities: []SizeQuantity{{"s", 2}, {SizeM, 0}}},
		},
		OrderRemarks: []string{"", "  ", " keep "},
	}

	p.Normalize()

	assert.Equal(t, "Shree Textiles", p.PartyName)
	assert.Equal(t, Date("2024-03-05"), p.DateOfOrder)
	assert.Equal(t, StatusPending, p.Status)
	require.Len(t, p.OrderItems, 1)
	assert.Equal(t, "D1", p.OrderItems[0].DesignNumber)
	assert.Equal(t, []SizeQuantity{{SizeS, 2}}, p.OrderItems[0].SizesQuantities)
	assert.Equal(t, []string{"keep"}, p.OrderRemarks)
	assert.NoError(t, p.Validate())
}

func TestPayload_MarshalJSON_Shape(t *testing.T) {
	p := Payload{
		PartyName:   "Shree Textiles",
		DateOfOrder: "2024-03-05",
		Status:      StatusPending,
		OrderItems:  []Item{{DesignNumber: "D1", Color: "Red", SizesQuantities: []SizeQuantity{{SizeS, 2}}}},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"party_name": "Shree Textiles",
		"date_of_order": "2024-03-05",
		"expected_delivery_date": null,
		"transport": "",
		"remarks": "",
		"status": "pending",
		"order_items": [{"design_number": "D1", "color": "Red", "sizes_quantities": [{"size": "S", "quantity": 2}]}],
		"order_remarks": null
	}`, string(data))
}

// ============================================
// Decode Tests
// ============================================

func TestDecodeOrders(t *testing.T) {
	data := []byte(`[
		{
			"id": 3,
			"order_number": "ORD-3",
			"party_name": "Shree Textiles",
			"date_of_order": "2024-03-05T00:00:00.000Z",
			"expected_delivery_date": null,
			"transport": "VRL",
			"remarks": null,
			"status": "Pending",
			"created_at": "2024-03-05T10:00:00Z",
			"updated_at": "2024-03-05T10:00:00Z",
			"order_items": [{"design_number": "D1", "color": "Red", "sizes_quantities": [{"size": "xl", "quantity": 4}]}],
			"order_remarks": [{"id": 9, "remark": "Urgent", "created_at": "2024-03-05T10:00:00Z"}]
		},
		{"id": "b7", "order_number": "ORD-4", "status": "cancelled", "order_items": [{"design_number": "D2", "sizes_quantities": null}]}
	]`)

	orders, err := DecodeOrders(data)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	first := orders[0]
	assert.Equal(t, shared.ID("3"), first.ID)
	assert.Equal(t, Date("2024-03-05"), first.DateOfOrder)
	assert.True(t, first.ExpectedDeliveryDate.IsZero())
	assert.Equal(t, StatusPending, first.Status)
	assert.Equal(t, SizeXL, first.Items[0].SizesQuantities[0].Size)
	assert.Equal(t, shared.ID("9"), first.OrderRemarks[0].ID)

	second := orders[1]
	assert.Equal(t, shared.ID("b7"), second.ID)
	assert.NotNil(t, second.Items[0].SizesQuantities)
	assert.NotNil(t, second.OrderRemarks)
}

func TestDecodeOrders_TimestampForms(t *testing.T) {
	data := []byte(`[
		{"order_number": "A", "status": "pending", "date_of_order": "2024-03-05T10:00:00Z"},
		{"order_number": "B", "status": "pending", "date_of_order": "2024-03-05 10:00:00", "expected_delivery_date": "2024-03-20 00:00:00"}
	]`)

	orders, err := DecodeOrders(data)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, Date("2024-03-05"), o.DateOfOrder, o.OrderNumber)
	}
	assert.Equal(t, Date("2024-03-20"), orders[1].ExpectedDeliveryDate)
}

func TestDecodeOrders_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		msg  string
	}{
		{"malformed", `{"not": "a list"}`, "Malformed order list"},
		{"missing number", `[{"id": 1, "status": "pending"}]`, "Order id 1: missing order number"},
		{"unknown status", `[{"order_number": "A", "status": "shipped"}]`, `Order A: unknown status "shipped"`},
		{"unknown size", `[{"order_number": "A", "status": "pending", "order_items": [{"design_number": "D", "sizes_quantities": [{"size": "XS", "quantity": 1}]}]}]`, `Order A: unknown size "XS"`},
		{"duplicate size", `[{"order_number": "A", "status": "pending", "order_items": [{"design_number": "D", "sizes_quantities": [{"size": "S", "quantity": 1}, {"size": "s", "quantity": 2}]}]}]`, "size S appears more than once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeOrders([]byte(tt.data))
			require.Error(t, err)
			var de *shared.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, "INVALID_ORDER_PAYLOAD", de.Code)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDecodeOrders_Empty(t *testing.T) {
	orders, err := DecodeOrders([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestDecodeOrder(t *testing.T) {
	o, err := DecodeOrder([]byte(`{"id": 5, "order_number": "ORD-5", "status": "completed"}`))
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, o.Status)
	assert.Empty(t, o.Items)
}

func TestDate(t *testing.T) {
	assert.Equal(t, Date("2024-01-02"), NormalizeDate("2024-01-02T18:30:00.000Z"))
	assert.Equal(t, Date("2024-01-02"), NormalizeDate("2024-01-02 18:30:00"))
	assert.Equal(t, Date("2024-01-02"), NormalizeDate("2024-01-02 18:30:00.123+05:30"))
	assert.Equal(t, Date("2024-01-02"), NormalizeDate("2024-01-02"))
	assert.Equal(t, Date("garbage"), NormalizeDate("garbage"))
	assert.True(t, Date("").Time().IsZero())
	assert.Equal(t, 2024, Date("2024-01-02").Time().Year())
}
