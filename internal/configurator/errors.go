package configurator

import "errors"

var (
	ErrIndexOutOfRange        = errors.New("row index out of range")
	ErrLastItem               = errors.New("combo must keep at least one item")
	ErrUnknownField           = errors.New("unknown field")
	ErrFieldValueInvalid      = errors.New("field value invalid")
	ErrAttributeKindInvalid   = errors.New("attribute kind invalid")
	ErrFreeTextValues         = errors.New("free text attribute carries no values")
	ErrApplicationTypeInvalid = errors.New("promotion application type invalid")
	ErrTargetNotSelectable    = errors.New("promotion target does not accept ids")
	ErrPayloadInvalid         = errors.New("payload invalid")
)

// 校验消息 key（由 i18n 渲染）
const (
	MsgRequired                 = "validation.required"
	MsgNonNegative              = "validation.non_negative"
	MsgPositive                 = "validation.positive"
	MsgTooLong                  = "validation.too_long"
	MsgInvalidOption            = "validation.invalid_option"
	MsgInvalid                  = "validation.invalid"
	MsgUnitNameRequired         = "validation.unit_name_required"
	MsgUnitFactorPositive       = "validation.unit_factor_positive"
	MsgAttributeNameRequired    = "validation.attribute_name_required"
	MsgAttributeValueRequired   = "validation.attribute_value_required"
	MsgAttributeDefaultConflict = "validation.attribute_default_conflict"
	MsgComboItemsRequired       = "validation.combo_items_required"
	MsgComboItemsDuplicate      = "validation.combo_items_duplicate"
	MsgComboItemProduct         = "validation.combo_item_product_required"
	MsgComboItemQuantity        = "validation.combo_item_quantity_min"
	MsgComboItemStockExceeded   = "validation.combo_item_stock_exceeded"
	MsgBranchRequired           = "validation.branch_required"
	MsgTimeSlotRequired         = "validation.time_slot_required"
	MsgTimeSlotInactive         = "validation.time_slot_inactive"
	MsgPromotionProducts        = "validation.promotion_product_required"
	MsgPromotionCategories      = "validation.promotion_category_required"
	MsgPromotionCombos          = "validation.promotion_combo_required"
	MsgEndBeforeStart           = "validation.end_date_before_start"
	MsgEndNotAfterStart         = "validation.end_date_not_after_start"
	MsgDiscountPercentMax       = "validation.discount_percent_max"
)

// 字段与集合名（同时用作提交载荷 key）
const (
	FieldName             = "name"
	FieldDescription      = "description"
	FieldCategoryID       = "category_id"
	FieldSupplierID       = "supplier_id"
	FieldBaseUnit         = "base_unit"
	FieldBaseCostPrice    = "base_cost_price"
	FieldBaseStorePrice   = "base_store_price"
	FieldBaseAppPrice     = "base_app_price"
	FieldBaseStock        = "base_stock_quantity"
	FieldIsActive         = "is_active"
	FieldStorePrice       = "store_price"
	FieldAppPrice         = "app_price"
	FieldStartDate        = "start_date"
	FieldEndDate          = "end_date"
	FieldStartsAt         = "starts_at"
	FieldEndsAt           = "ends_at"
	FieldDiscountType     = "discount_type"
	FieldDiscountValue    = "discount_value"
	FieldMinOrderAmount   = "min_order_amount"
	FieldApplicationType  = "application_type"
	FieldApplyAllBranches = "apply_all_branches"
	FieldBranchIDs        = "branch_ids"
	FieldIsFlexibleTime   = "is_flexible_time"
	FieldTimeSlotIDs      = "time_slot_ids"
	FieldProductIDs       = "product_ids"
	FieldCategoryIDs      = "category_ids"
	FieldComboIDs         = "combo_ids"
	FieldItemProductID    = "product_id"
	FieldItemQuantity     = "quantity"

	CollectionUnits           = "unit_conversions"
	CollectionAttributes      = "attributes"
	CollectionAttributeValues = "attribute_values"
	CollectionItems           = "items"
)
