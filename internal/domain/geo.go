package domain

import "fmt"

type Country struct {
	ID     int64
	Name   string
	Cities []City
}

type City struct {
	ID        int64
	Name      string
	CountryID int64
	Country   *Country
}

type Airport struct {
	ID        int64
	Name      string
	CountryID int64
	CityID    int64
	Country   *Country
	City      *City
}

// Label renders the airport the way route listings show it: "<city>, <country> - '<name>'".
func (a Airport) Label() string {
	var city, country string
	if a.City != nil {
		city = a.City.Name
	}
	if a.Country != nil {
		country = a.Country.Name
	}
	return fmt.Sprintf("%s, %s - '%s'", city, country, a.Name)
}

// CheckCity rejects an airport whose city lies in a different country.
func (a Airport) CheckCity(city City) error {
	if city.CountryID != a.CountryID {
		return NewValidationError(NonFieldErrors, "The selected city does not belong to the selected country.")
	}
	return nil
}
