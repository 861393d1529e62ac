package model

import "time"

// Customer owns zero or more Addresses. Email is unique across customers.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	Addresses []Address `json:"addresses"`
}

// Address is a street location of a customer inside a City.
type Address struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	Street     string    `json:"street"`
	City       City      `json:"city"`
	ZipCode    *string   `json:"zip_code"`
	CreatedAt  time.Time `json:"created_at"`
}

// CountryCount is the number of distinct customers with at least one address in a country.
type CountryCount struct {
	CountryID int64  `json:"country_id"`
	Country   string `json:"country"`
	Count     int    `json:"count"`
}

// DashboardStats aggregates customer counts for the dashboard.
// Customers without any address are counted in CustomersWithoutAddress and under no country.
type DashboardStats struct {
	TotalCustomers          int            `json:"total_customers"`
	CustomersWithoutAddress int            `json:"customers_without_address"`
	CustomersByCountry      []CountryCount `json:"customers_by_country"`
}
