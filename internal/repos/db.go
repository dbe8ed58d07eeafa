package repos

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"pawmart/internal/domain"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (pets/products/gallery/team)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Pets (timestamps are RFC3339 UTC so string comparison orders correctly)
CREATE TABLE IF NOT EXISTS pets(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  type TEXT NOT NULL,
  breed TEXT NOT NULL DEFAULT '',
  age TEXT NOT NULL,
  color TEXT NOT NULL,
  gender TEXT NOT NULL CHECK (gender IN ('Male','Female','N/A')),
  size TEXT NOT NULL CHECK (size IN ('Tiny','Small','Medium','Large')),
  weight REAL NOT NULL CHECK (weight >= 0),
  price REAL NOT NULL CHECK (price >= 0),
  location TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  images_json TEXT NOT NULL DEFAULT '[]',
  additional_json TEXT NOT NULL DEFAULT '[]',
  map_address TEXT NOT NULL DEFAULT '',
  map_link TEXT NOT NULL DEFAULT '',
  map_lat REAL NOT NULL DEFAULT 0,
  map_lng REAL NOT NULL DEFAULT 0,
  has_map INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_pets_category   ON pets(LOWER(category));
CREATE INDEX IF NOT EXISTS idx_pets_created_at ON pets(created_at);
CREATE INDEX IF NOT EXISTS idx_pets_price      ON pets(price);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  type TEXT NOT NULL,
  color TEXT NOT NULL DEFAULT '',
  price REAL NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  description TEXT NOT NULL DEFAULT '',
  images_json TEXT NOT NULL DEFAULT '[]',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(LOWER(category));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Reviews
CREATE TABLE IF NOT EXISTS reviews(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  author TEXT NOT NULL,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);

-- Appointment reservations
CREATE TABLE IF NOT EXISTS reservations(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  date TEXT NOT NULL,
  species TEXT NOT NULL DEFAULT '',
  breed TEXT NOT NULL DEFAULT '',
  reason TEXT NOT NULL DEFAULT '',
  special_note TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','confirmed','cancelled','completed')),
  admin_notes TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_reservations_status ON reservations(status);

-- Gallery & team (admin back-office content)
CREATE TABLE IF NOT EXISTS gallery(
  id TEXT PRIMARY KEY,
  url TEXT NOT NULL,
  caption TEXT NOT NULL DEFAULT '',
  position INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS team_members(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  role TEXT NOT NULL,
  photo TEXT NOT NULL DEFAULT '',
  bio TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);

-- Carts
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price_at_add NUMERIC NOT NULL,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  session_id TEXT,
  customer_name TEXT,
  customer_email TEXT,
  address TEXT,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'PLACED',
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  qty INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

-- Wishlists
CREATE TABLE IF NOT EXISTS wishlists(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS wishlist_items(
  wishlist_id TEXT NOT NULL REFERENCES wishlists(id) ON DELETE CASCADE,
  product_id  TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  created_at  TEXT,
  PRIMARY KEY (wishlist_id, product_id)
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM pets`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo pets/products/gallery/team")

	ts := now()
	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO pets(id,name,category,type,breed,age,color,gender,size,weight,price,location,description,images_json,created_at) VALUES
	  ('pet-buddy','Buddy','dog','Retriever','Golden Retriever','2 years','Golden','Male','Large',28.5,450,'Austin, TX','Friendly and house trained.','["pets/pet-buddy/main.jpg"]',?),
	  ('pet-misha','Misha','cat','Shorthair','British Shorthair','1 year','Grey','Female','Small',4.2,300,'Dallas, TX','Calm lap cat.','["pets/pet-misha/main.jpg"]',?),
	  ('pet-kiwi','Kiwi','bird','Parakeet','Budgerigar','6 months','Green','N/A','Tiny',0.04,60,'Houston, TX','Loves to whistle.','["pets/pet-kiwi/main.jpg"]',?)`,
		ts, ts, ts)

	tx.MustExec(`INSERT INTO products(id,name,category,type,color,price,stock,description,images_json,created_at) VALUES
	  ('prod-kibble','Premium Dog Kibble 10kg','food','dry food','',49.99,25,'Grain-free adult formula.','["products/prod-kibble/main.jpg"]',?),
	  ('prod-scratcher','Cat Scratching Post','accessories','furniture','Beige',34.50,12,'Sisal rope post with perch.','["products/prod-scratcher/main.jpg"]',?),
	  ('prod-leash','Reflective Leash','accessories','walking','Red',15.00,40,'1.8m nylon leash.','["products/prod-leash/main.jpg"]',?)`,
		ts, ts, ts)

	tx.MustExec(`INSERT INTO gallery(id,url,caption,position,created_at) VALUES
	  ('gal-1','gallery/storefront.jpg','Our storefront',1,?),
	  ('gal-2','gallery/adoption-day.jpg','Adoption day 2025',2,?)`, ts, ts)

	tx.MustExec(`INSERT INTO team_members(id,name,role,photo,bio,created_at) VALUES
	  ('team-ana','Ana Reyes','Store Manager','team/ana.jpg','Ten years in animal care.',?),
	  ('team-omar','Omar Diaz','Groomer','team/omar.jpg','Certified pet groomer.',?)`, ts, ts)

	return tx.Commit()
}

// seedUsers ensures a default admin and one regular user exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "admin@pawmart.test", "Admin", domain.RoleAdmin, "Passw0rd!"),
		mk("u-alice", "alice@pawmart.test", "Alice", domain.RoleUser, "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
