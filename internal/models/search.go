package models

type SearchRequest struct {
	Query           string `json:"search"`
	Page            int    `json:"page"`
	Wifi            *bool  `json:"wifi,omitempty"`
	WashingMachine  *bool  `json:"washing_machine,omitempty"`
	ClothesIron     *bool  `json:"clothes_iron,omitempty"`
	Towels          *bool  `json:"towels,omitempty"`
	AirConditioning *bool  `json:"air_conditioning,omitempty"`
	Refrigerator    *bool  `json:"refrigerator,omitempty"`
	Heater          *bool  `json:"heater,omitempty"`
}

type SearchResponse struct {
	Properties []Property `json:"properties"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
}
