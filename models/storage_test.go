package models

import (
	"log"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSuite(tb testing.TB) (func(tb testing.TB), *Database) {
	log.Println("setup suite")

	// database file name
	dbName := "database_storage_test.db"

	// remove old database
	e := os.Remove(dbName)
	if e != nil {
		if !strings.Contains(e.Error(), "no such file or directory") {
			log.Fatal(e)
		}
	}

	// open and create a new database
	gdb, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	// migrate tables
	err = gdb.AutoMigrate(&User{}, &Project{}, &Category{}, &Donation{}, &FileUpload{})
	if err != nil {
		log.Fatal(err)
	}

	database := &Database{GormDB: gdb}
	DB = database

	// Return a function to teardown the test
	return func(tb testing.TB) {
		log.Println("teardown suite")
		err = os.Remove(dbName)
		if err != nil {
			log.Fatal(err)
		}
	}, database
}

func init() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}

func TestGetUserByEmailNotFound(t *testing.T) {
	teardownSuite, _ := setupSuite(t)
	defer teardownSuite(t)

	u, err := DB.GetUserByEmail("nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestCreateAndGetUser(t *testing.T) {
	teardownSuite, _ := setupSuite(t)
	defer teardownSuite(t)

	u, err := DB.CreateUser(&User{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		PasswordDigest: "x",
	})
	assert.NoError(t, err)
	assert.NotNil(t, u)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, RegularRole, u.Role)

	byEmail, err := DB.GetUserByEmail("ada@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := DB.GetUserByID(u.ID)
	assert.NoError(t, err)
	assert.NotNil(t, byID)
	assert.Equal(t, "Ada", byID.FirstName)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	teardownSuite, _ := setupSuite(t)
	defer teardownSuite(t)

	_, err := DB.CreateUser(&User{FirstName: "Ada", LastName: "L", Email: "dup@example.com"})
	assert.NoError(t, err)

	_, err = DB.CreateUser(&User{FirstName: "Grace", LastName: "H", Email: "dup@example.com"})
	assert.Error(t, err)
}

func TestUpdateUserRole(t *testing.T) {
	teardownSuite, _ := setupSuite(t)
	defer teardownSuite(t)

	u, err := DB.CreateUser(&User{FirstName: "Ada", LastName: "L", Email: "role@example.com"})
	assert.NoError(t, err)

	updated, err := DB.UpdateUserRole(u.ID, AdminRole)
	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Equal(t, AdminRole, updated.Role)

	// unknown id reports not found, not an error
	missing, err := DB.UpdateUserRole(uuid.New(), AdminRole)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteUser(t *testing.T) {
	teardownSuite, _ := setupSuite(t)
	defer teardownSuite(t)

	u, err := DB.CreateUser(&User{FirstName: "Ada", LastName: "L", Email: "gone@example.com"})
	assert.NoError(t, err)

	deleted, err := DB.DeleteUser(u.ID)
	assert.NoError(t, err)
	assert.NotNil(t, deleted)

	after, err := DB.GetUserByEmail("gone@example.com")
	assert.NoError(t, err)
	assert.Nil(t, after)
}

func TestProjectLifecycle(t *testing.T) {
	teardownSuite, _ := setupSuite(t)
	defer teardownSuite(t)

	p, err := DB.CreateProject(&Project{
		Title:       "Clean water",
		Resume:      "Wells for rural towns",
		Description: "Dig and maintain wells",
		Country:     "AR",
		GoalAmount:  10000,
	})
	assert.NoError(t, err)
	assert.NotNil(t, p)
	assert.Equal(t, ProjectActive, p.Status)

	err = DB.IncrementProjectAmount(p.ID, 250.5)
	assert.NoError(t, err)
	err = DB.IncrementProjectAmount(p.ID, 100)
	assert.NoError(t, err)

	got, err := DB.GetProject(p.ID)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.InDelta(t, 350.5, got.CurrentAmount, 0.001)

	got, err = DB.AppendProjectImage(got, "https://img.example.com/a.png")
	assert.NoError(t, err)
	assert.Equal(t, []string{"https://img.example.com/a.png"}, []string(got.ImageURLs))

	deleted, err := DB.DeleteProject(p.ID)
	assert.NoError(t, err)
	assert.NotNil(t, deleted)

	missing, err := DB.GetProject(p.ID)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCategoryByName(t *testing.T) {
	teardownSuite, _ := setupSuite(t)
	defer teardownSuite(t)

	cat, err := DB.CreateCategory(&Category{Name: "education"})
	assert.NoError(t, err)
	assert.NotNil(t, cat)

	byName, err := DB.GetCategoryByName("education")
	assert.NoError(t, err)
	assert.NotNil(t, byName)
	assert.Equal(t, cat.ID, byName.ID)

	missing, err := DB.GetCategoryByName("health")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDonationPreloadsUserAndProject(t *testing.T) {
	teardownSuite, _ := setupSuite(t)
	defer teardownSuite(t)

	u, err := DB.CreateUser(&User{FirstName: "Ada", LastName: "L", Email: "donor@example.com"})
	assert.NoError(t, err)
	p, err := DB.CreateProject(&Project{Title: "Trees", Resume: "r", Description: "d", Country: "AR", GoalAmount: 100})
	assert.NoError(t, err)

	d, err := DB.CreateDonation(&Donation{Amount: 42, PaymentMethod: "card", UserID: u.ID, ProjectID: p.ID})
	assert.NoError(t, err)
	assert.NotNil(t, d)
	assert.False(t, d.Date.IsZero())

	got, err := DB.GetDonation(d.ID)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "donor@example.com", got.User.Email)
	assert.Equal(t, "Trees", got.Project.Title)
}
