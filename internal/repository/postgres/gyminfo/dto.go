package gyminfo

type GetListResponse struct {
	ID           int     `json:"id"`
	GymName      *string `json:"gym_name"`
	LogoUrl      *string `json:"logo_url"`
	Currency     *string `json:"currency"`
	EndOfDayTime *string `json:"end_of_day_time"`
}

type UpdateRequest struct {
	ID           int     `json:"id" form:"id"`
	GymName      *string `json:"gym_name" form:"gym_name"`
	LogoUrl      *string `json:"logo_url" form:"logo_url"`
	Currency     *string `json:"currency" form:"currency"`
	EndOfDayTime *string `json:"end_of_day_time" form:"end_of_day_time"`
}
