package database

import (
	"bufio"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const blockedWordsURL = "https://raw.githubusercontent.com/LDNOOBW/List-of-Dirty-Naughty-Obscene-and-Otherwise-Bad-Words/refs/heads/master/en"

// SeedBlockedWords downloads and stores the word list backing the chat
// content filter. Already-populated storage is left alone, so the
// download happens once per device.
func (db *DB) SeedBlockedWords() error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM blocked_words").Scan(&count); err != nil {
		return fmt.Errorf("failed to check blocked words count: %w", err)
	}
	if count > 0 {
		log.Printf("Chat filter already populated with %d words", count)
		return nil
	}

	log.Println("Downloading chat filter word list...")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(blockedWordsURL)
	if err != nil {
		return fmt.Errorf("failed to download word list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code from word list URL: %d", resp.StatusCode)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(db.Dialect.RewriteQuery("INSERT INTO blocked_words (word) VALUES (?)"))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	added := 0
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		word := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if word == "" {
			continue
		}
		if _, err := stmt.Exec(word); err != nil {
			// Duplicates are fine, keep going
			continue
		}
		added++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading word list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit word list: %w", err)
	}

	log.Printf("Chat filter seeded with %d words", added)
	return nil
}

// LoadBlockedWords returns all stored filter words
func (db *DB) LoadBlockedWords() ([]string, error) {
	rows, err := db.Query("SELECT word FROM blocked_words")
	if err != nil {
		return nil, fmt.Errorf("failed to load blocked words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("failed to scan blocked word: %w", err)
		}
		words = append(words, word)
	}
	return words, rows.Err()
}
