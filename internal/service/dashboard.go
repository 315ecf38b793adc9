package service

import "context"

// DashboardCounts is the landing-page summary.
type DashboardCounts struct {
	Criminals int64 `json:"criminals"`
	Crimes    int64 `json:"crimes"`
	Courts    int64 `json:"courts"`
	Jails     int64 `json:"jails"`
}

// Dashboard returns total record counts per major entity.
func (s *Service) Dashboard(ctx context.Context) (*DashboardCounts, error) {
	criminals, err := s.repos.Criminals.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	crimes, err := s.repos.Crimes.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	courts, err := s.repos.Courts.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	jails, err := s.repos.Jails.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	return &DashboardCounts{
		Criminals: criminals,
		Crimes:    crimes,
		Courts:    courts,
		Jails:     jails,
	}, nil
}
