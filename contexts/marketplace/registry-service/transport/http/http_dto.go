package http

type ErrorResponse struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}

type DataItemDTO struct {
	ItemID        string `json:"item_id"`
	Seller        string `json:"seller"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Price         uint64 `json:"price"`
	AttachmentURL string `json:"attachment_url"`
	DataFormat    string `json:"data_format"`
	Status        string `json:"status"`
	Quality       string `json:"quality"`
	Rating        uint32 `json:"rating"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type PurchaserDTO struct {
	PurchaserID    string   `json:"purchaser_id"`
	Owner          string   `json:"owner"`
	Name           string   `json:"name"`
	Price          uint64   `json:"price"`
	Message        string   `json:"message"`
	PurchasedItems []string `json:"purchased_items"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

type DataItemPayloadRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Price         uint64 `json:"price"`
	AttachmentURL string `json:"attachment_url"`
	DataFormat    string `json:"data_format"`
	Status        string `json:"status"`
	Quality       string `json:"quality"`
	Rating        uint32 `json:"rating"`
}

type PurchaserPayloadRequest struct {
	Name    string `json:"name"`
	Price   uint64 `json:"price"`
	Message string `json:"message"`
}

type AddPurchasedItemRequest struct {
	ItemID string `json:"item_id"`
}

type DataItemResponse struct {
	Status string      `json:"status"`
	Data   DataItemDTO `json:"data"`
}

type ListDataItemsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Items []DataItemDTO `json:"items"`
		Count int           `json:"count"`
	} `json:"data"`
}

type PurchaserResponse struct {
	Status string       `json:"status"`
	Data   PurchaserDTO `json:"data"`
}

type ListPurchasersResponse struct {
	Status string `json:"status"`
	Data   struct {
		Purchasers []PurchaserDTO `json:"purchasers"`
		Count      int            `json:"count"`
	} `json:"data"`
}

type DeleteResponse struct {
	Status string `json:"status"`
	Data   struct {
		DeletedID string `json:"deleted_id"`
	} `json:"data"`
}
