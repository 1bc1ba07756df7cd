package main

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/Xek-YP/ya-note/internal/slug"
	"github.com/Xek-YP/ya-note/internal/store/sqlstore"
)

var sampleNotes = []struct {
	title string
	text  string
}{
	{"Список покупок", "Молоко, хлеб, сыр"},
	{"Идеи для отпуска", "Карелия, Байкал, Алтай"},
	{"Книги к прочтению", "«Мастер и Маргарита», «Понедельник начинается в субботу»"},
	{"Рабочие заметки", "Созвон в 11:00, дедлайн по отчёту в пятницу"},
	{"Рецепт борща", "Свёкла, капуста, картофель, говядина"},
}

func main() {
	st, err := sqlstore.New("sqlite3", "./ya_note.db")
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	userID, err := st.CreateUser("demo", string(hash))
	if err != nil {
		log.Fatalf("Could not create demo user: %v", err)
	}
	fmt.Printf("Created user demo (id %d)\n", userID)

	for _, n := range sampleNotes {
		note, err := st.CreateNote(userID, n.title, n.text, slug.Make(n.title))
		if err != nil {
			log.Fatalf("Could not create note %q: %v", n.title, err)
		}
		fmt.Printf("Created note %q -> /note/%s/\n", note.Title, note.Slug)
	}
}
