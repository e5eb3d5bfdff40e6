package dashboard

type StatsResponse struct {
	TotalClients     int     `json:"total_clients"`
	TodayClients     int     `json:"today_clients"`
	WeekClients      int     `json:"week_clients"`
	TotalRevenue     float64 `json:"total_revenue"`
	TodayRevenue     float64 `json:"today_revenue"`
	WeekRevenue      float64 `json:"week_revenue"`
	ExpiringThisWeek int     `json:"expiring_this_week"`
	TodayAttendance  int     `json:"today_attendance"`
}
