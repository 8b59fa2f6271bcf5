package main

import (
	"fmt"
	"log"
	"time"

	"github.com/cachemir/cachemir-core/pkg/client"
)

func main() {
	c := client.New("localhost:2203")
	defer c.Close()

	fmt.Println("=== cachemir-core client example ===")

	fmt.Println("\n--- Basic get/set/del ---")

	if err := c.Set("user:1", []byte("john_doe")); err != nil {
		log.Printf("set failed: %v", err)
	} else {
		fmt.Println("set user:1 = john_doe")
	}

	if value, err := c.Get("user:1"); err != nil {
		log.Printf("get failed: %v", err)
	} else {
		fmt.Printf("get user:1 = %s\n", value)
	}

	fmt.Println("\n--- Expiration ---")

	if err := c.SetEx("temp_key", []byte("temp_value"), 5); err != nil {
		log.Printf("set ex failed: %v", err)
	} else {
		fmt.Println("set temp_key with 5s TTL")
	}

	if ttl, err := c.TTL("temp_key"); err != nil {
		log.Printf("ttl failed: %v", err)
	} else {
		fmt.Printf("ttl temp_key = %ds\n", ttl)
	}

	fmt.Println("\n--- Eviction ---")

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("k%d", i)
		if err := c.Set(key, []byte(time.Now().String())); err != nil {
			log.Printf("set %s failed: %v", key, err)
		}
	}

	if err := c.LRUEvict(); err != nil {
		log.Printf("lru_evict failed: %v", err)
	} else {
		fmt.Println("lru_evict dropped the least-recently-used key")
	}

	fmt.Println("\n--- Cleanup ---")

	if err := c.Del("user:1"); err != nil {
		log.Printf("del failed: %v", err)
	} else {
		fmt.Println("del user:1")
	}

	fmt.Println("\n=== example complete ===")
}
