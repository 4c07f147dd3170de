package main

import (
	"context"
	"flag"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotelpms/internal/config"
	"hotelpms/internal/database"
	"hotelpms/internal/domain"
	"hotelpms/internal/domain/auth"
	"hotelpms/internal/domain/booking"
	"hotelpms/internal/domain/client"
	"hotelpms/internal/domain/hotel"
	"hotelpms/internal/domain/room"
	"hotelpms/internal/pkg/dates"
	"hotelpms/internal/pkg/logger"
)

type services struct {
	auth     *auth.Service
	hotels   *hotel.Service
	rooms    *room.Service
	clients  *client.Service
	bookings *booking.Service
}

func main() {
	roomsFile := flag.String("rooms", "", "XLSX file with a Rooms sheet to import instead of the demo rooms")
	reset := flag.Bool("reset", true, "delete existing data first")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("db connect failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("db migrate failed")
	}

	if *reset {
		log.Info("cleaning old data")
		for _, table := range []string{"email_logs", "bookings", "clients", "rooms", "users", "hotels"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				log.WithError(err).WithField("table", table).Fatal("cleanup failed")
			}
		}
	}

	svc := newServices(db, log)
	ctx := context.Background()

	hotels := seedHotels(ctx, svc, log)
	seedUsers(ctx, svc, hotels, log)

	if *roomsFile != "" {
		importRooms(ctx, svc, hotels, *roomsFile, log)
	} else {
		seedRooms(ctx, svc, hotels, log)
	}

	clients := seedClients(ctx, svc, log)
	seedBookings(ctx, svc, clients, log)

	log.Info("seed completed")
}

func newServices(db *gorm.DB, log *logrus.Logger) services {
	return services{
		auth:     auth.NewService(auth.NewUserRepository(db), nil, log),
		hotels:   hotel.NewService(hotel.NewRepository(db), log),
		rooms:    room.NewService(room.NewRepository(db), log),
		clients:  client.NewService(client.NewRepository(db), log),
		bookings: booking.NewService(booking.NewRepository(db), nil, log),
	}
}

func seedHotels(ctx context.Context, svc services, log *logrus.Logger) map[string]*domain.Hotel {
	out := map[string]*domain.Hotel{}
	for _, req := range []hotel.CreateHotelRequest{
		{Name: "Hotel Sol", Email: "recepcion@hotelsol.test", Phone: "+54 11 4000-1000", Address: "Av. Corrientes 1200"},
		{Name: "Hotel Luna", Email: "recepcion@hotelluna.test", Phone: "+54 261 400-2000", Address: "San Martín 450"},
	} {
		h, err := svc.hotels.Create(ctx, req)
		if err != nil {
			log.WithError(err).WithField("hotel", req.Name).Fatal("create hotel failed")
		}
		out[h.Slug] = h
	}
	log.WithField("count", len(out)).Info("hotels created")
	return out
}

func seedUsers(ctx context.Context, svc services, hotels map[string]*domain.Hotel, log *logrus.Logger) {
	reqs := []auth.CreateUserRequest{
		{Email: "admin@hotelpms.test", Password: "admin1234", Name: "Superadmin", Role: domain.RoleSuperadmin},
	}
	for slug, h := range hotels {
		hotelID := h.ID
		reqs = append(reqs, auth.CreateUserRequest{
			Email:    "admin@" + slug + ".test",
			Password: "hotel1234",
			Name:     h.Name + " desk",
			Role:     domain.RoleHotelAdmin,
			HotelID:  &hotelID,
		})
	}
	for _, req := range reqs {
		if _, err := svc.auth.CreateUser(ctx, req); err != nil {
			log.WithError(err).WithField("email", req.Email).Fatal("create user failed")
		}
		log.WithField("email", req.Email).Info("user created")
	}
}

func seedRooms(ctx context.Context, svc services, hotels map[string]*domain.Hotel, log *logrus.Logger) {
	layout := []struct {
		number   string
		kind     domain.RoomType
		capacity int
		price    int64
		floor    int
	}{
		{"101", domain.RoomSingle, 1, 60, 1},
		{"102", domain.RoomDouble, 2, 85, 1},
		{"201", domain.RoomTriple, 3, 110, 2},
		{"202", domain.RoomFamily, 5, 150, 2},
		{"301", domain.RoomSuite, 4, 220, 3},
	}
	for _, h := range hotels {
		for _, l := range layout {
			_, err := svc.rooms.Create(ctx, h.ID, room.CreateRoomRequest{
				Number:   l.number,
				RoomType: l.kind,
				Capacity: l.capacity,
				Price:    decimal.NewFromInt(l.price),
				Floor:    l.floor,
			})
			if err != nil {
				log.WithError(err).WithFields(logrus.Fields{"hotel": h.Slug, "room": l.number}).Fatal("create room failed")
			}
		}
	}
	log.WithField("per_hotel", len(layout)).Info("rooms created")
}

func importRooms(ctx context.Context, svc services, hotels map[string]*domain.Hotel, path string, log *logrus.Logger) {
	rows, err := loadRoomSheet(path)
	if err != nil {
		log.WithError(err).WithField("file", path).Fatal("read rooms file failed")
	}

	imported := 0
	for _, row := range rows {
		h, ok := hotels[row.HotelSlug]
		if !ok {
			log.WithField("hotel", row.HotelSlug).Warn("unknown hotel in rooms file, row skipped")
			continue
		}
		if _, err := svc.rooms.Create(ctx, h.ID, row.Request); err != nil {
			log.WithError(err).WithFields(logrus.Fields{"hotel": row.HotelSlug, "room": row.Request.Number}).Warn("room import failed")
			continue
		}
		imported++
	}
	log.WithFields(logrus.Fields{"file": path, "imported": imported, "rows": len(rows)}).Info("rooms imported")
}

func seedClients(ctx context.Context, svc services, log *logrus.Logger) []*domain.Client {
	reqs := []client.CreateClientRequest{
		{FirstName: "Ana", LastName: "Gómez", Email: "ana@example.com", Document: "30111222", Phone: "+54 11 5555-0001", Nationality: "Argentina"},
		{FirstName: "Luis", LastName: "Pérez", Email: "luis@example.com", Document: "28999111", Phone: "+54 11 5555-0002", Nationality: "Argentina", IsVIP: true},
		{FirstName: "Marta", LastName: "Silva", Email: "marta@example.com", Document: "41222333", Nationality: "Uruguay"},
	}
	out := make([]*domain.Client, 0, len(reqs))
	for _, req := range reqs {
		c, err := svc.clients.Create(ctx, req)
		if err != nil {
			log.WithError(err).WithField("email", req.Email).Fatal("create client failed")
		}
		out = append(out, c)
	}
	log.WithField("count", len(out)).Info("clients created")
	return out
}

// seedBookings spreads a few stays over the coming weeks, one room each, so
// the dashboard and calendars have something to show.
func seedBookings(ctx context.Context, svc services, clients []*domain.Client, log *logrus.Logger) {
	rooms, err := svc.rooms.List(ctx, room.Filter{})
	if err != nil {
		log.WithError(err).Fatal("list rooms failed")
	}

	today := dates.Today(time.Now())
	created := 0
	for i, r := range rooms {
		if i >= 6 {
			break
		}
		c := clients[i%len(clients)]
		status := domain.BookingPending
		if i%2 == 0 {
			status = domain.BookingConfirmed
		}
		checkIn := today.AddDate(0, 0, 1+i*3)

		_, err := svc.bookings.Create(ctx, booking.CreateInput{
			ClientID:    c.ID,
			RoomID:      r.ID,
			CheckIn:     checkIn,
			CheckOut:    checkIn.AddDate(0, 0, 2),
			GuestsCount: 1,
			Status:      status,
		})
		if err != nil {
			log.WithError(err).WithField("room_id", r.ID).Warn("create booking failed")
			continue
		}
		created++
	}
	log.WithField("count", created).Info("bookings created")
}
