// Command seed provisions demo data for local development: a KYC-verified
// driver with a scheduled trip, and a rider.
package main

import (
	"log"
	"time"

	"ridepool/internal/config"
	"ridepool/internal/models"
	"ridepool/internal/repositories"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	driver := seedUser("driver@ridepool.local", "Demo Driver", "9000000001", "driver")
	rider := seedUser("rider@ridepool.local", "Demo Rider", "9000000002", "rider")

	seedWallet(driver.ID, true)
	seedWallet(rider.ID, false)

	var trip models.Trip
	result := repositories.DB.Where("driver_id = ? AND status = ?", driver.ID, models.TripStatusScheduled).First(&trip)
	if result.Error == nil {
		log.Printf("scheduled trip %d already exists for driver %d", trip.ID, driver.ID)
		return
	}

	trip = models.Trip{
		DriverID:      driver.ID,
		Source:        "Koramangala",
		Destination:   "Whitefield",
		DepartureTime: time.Now().Add(24 * time.Hour),
		PricePerSeat:  15000, // 150 INR in paise
		TotalSeats:    3,
		Status:        models.TripStatusScheduled,
		Description:   "Daily office commute",
	}
	if err := repositories.DB.Create(&trip).Error; err != nil {
		log.Fatalf("seeding trip: %v", err)
	}
	log.Printf("seeded trip %d: %s -> %s, %d seats at %d paise",
		trip.ID, trip.Source, trip.Destination, trip.TotalSeats, trip.PricePerSeat)
}

func seedUser(email, name, phone, role string) *models.User {
	var user models.User
	result := repositories.DB.Where("email = ?", email).First(&user)
	if result.Error == nil {
		log.Printf("user %s already exists (id %d)", email, user.ID)
		return &user
	}

	user = models.User{
		Email:  email,
		Name:   name,
		Phone:  phone,
		Role:   role,
		Status: "active",
	}
	if err := repositories.DB.Create(&user).Error; err != nil {
		log.Fatalf("seeding user %s: %v", email, err)
	}
	log.Printf("seeded user %s (id %d, role %s)", email, user.ID, role)
	return &user
}

func seedWallet(userID uint, kycVerified bool) {
	var wallet models.Wallet
	result := repositories.DB.Where("user_id = ?", userID).First(&wallet)
	if result.Error == nil {
		return
	}

	wallet = models.Wallet{
		UserID:      userID,
		Currency:    "INR",
		Status:      models.WalletStatusActive,
		KYCVerified: kycVerified,
	}
	if err := repositories.DB.Create(&wallet).Error; err != nil {
		log.Fatalf("seeding wallet for user %d: %v", userID, err)
	}
	log.Printf("seeded wallet for user %d (kyc=%t)", userID, kycVerified)
}
