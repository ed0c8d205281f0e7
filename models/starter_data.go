package models

// StartersData is the claimable starter catalog. Spanish descriptions match
// the community site; sprites are resolved client-side from the pokemonId.
var StartersData = []StarterData{
	{PokemonID: 1, Name: "Bulbasaur", NameEs: "Bulbasaur", Generation: 1, Types: []string{"grass", "poison"},
		Stats: StarterStats{HP: 45, Atk: 49, Def: 49, SpA: 65, SpD: 65, Spe: 45},
		Description: "Una rara semilla le fue plantada en el lomo al nacer.", HeightM: 0.7, WeightKg: 6.9},
	{PokemonID: 4, Name: "Charmander", NameEs: "Charmander", Generation: 1, Types: []string{"fire"},
		Stats: StarterStats{HP: 39, Atk: 52, Def: 43, SpA: 60, SpD: 50, Spe: 65},
		Description: "La llama de su cola indica su fuerza vital.", HeightM: 0.6, WeightKg: 8.5},
	{PokemonID: 7, Name: "Squirtle", NameEs: "Squirtle", Generation: 1, Types: []string{"water"},
		Stats: StarterStats{HP: 44, Atk: 48, Def: 65, SpA: 50, SpD: 64, Spe: 43},
		Description: "Se esconde en su caparazón y ataca con chorros de agua.", HeightM: 0.5, WeightKg: 9.0},
	{PokemonID: 152, Name: "Chikorita", NameEs: "Chikorita", Generation: 2, Types: []string{"grass"},
		Stats: StarterStats{HP: 45, Atk: 49, Def: 65, SpA: 49, SpD: 65, Spe: 45},
		Description: "Le encanta tomar el sol y usa la hoja de su cabeza para medir la temperatura.", HeightM: 0.9, WeightKg: 6.4},
	{PokemonID: 155, Name: "Cyndaquil", NameEs: "Cyndaquil", Generation: 2, Types: []string{"fire"},
		Stats: StarterStats{HP: 39, Atk: 52, Def: 43, SpA: 60, SpD: 50, Spe: 65},
		Description: "Se protege lanzando llamas por su lomo cuando se asusta.", HeightM: 0.5, WeightKg: 7.9},
	{PokemonID: 158, Name: "Totodile", NameEs: "Totodile", Generation: 2, Types: []string{"water"},
		Stats: StarterStats{HP: 50, Atk: 65, Def: 64, SpA: 44, SpD: 48, Spe: 43},
		Description: "Sus mandíbulas pueden triturar casi cualquier cosa.", HeightM: 0.6, WeightKg: 9.5},
	{PokemonID: 252, Name: "Treecko", NameEs: "Treecko", Generation: 3, Types: []string{"grass"},
		Stats: StarterStats{HP: 40, Atk: 45, Def: 35, SpA: 65, SpD: 55, Spe: 70},
		Description: "Trepa paredes verticales gracias a los ganchos de sus patas.", HeightM: 0.5, WeightKg: 5.0},
	{PokemonID: 255, Name: "Torchic", NameEs: "Torchic", Generation: 3, Types: []string{"fire"},
		Stats: StarterStats{HP: 45, Atk: 60, Def: 40, SpA: 70, SpD: 50, Spe: 45},
		Description: "Dentro de su cuerpo arde una llama que lo mantiene caliente.", HeightM: 0.4, WeightKg: 2.5},
	{PokemonID: 258, Name: "Mudkip", NameEs: "Mudkip", Generation: 3, Types: []string{"water"},
		Stats: StarterStats{HP: 50, Atk: 70, Def: 50, SpA: 50, SpD: 50, Spe: 40},
		Description: "La aleta de su cabeza detecta corrientes de agua.", HeightM: 0.4, WeightKg: 7.6},
	{PokemonID: 387, Name: "Turtwig", NameEs: "Turtwig", Generation: 4, Types: []string{"grass"},
		Stats: StarterStats{HP: 55, Atk: 68, Def: 64, SpA: 45, SpD: 55, Spe: 31},
		Description: "Hace la fotosíntesis con el brote de su cabeza.", HeightM: 0.4, WeightKg: 10.2},
	{PokemonID: 390, Name: "Chimchar", NameEs: "Chimchar", Generation: 4, Types: []string{"fire"},
		Stats: StarterStats{HP: 44, Atk: 58, Def: 44, SpA: 58, SpD: 44, Spe: 61},
		Description: "El fuego de su cola se apaga cuando duerme.", HeightM: 0.5, WeightKg: 6.2},
	{PokemonID: 393, Name: "Piplup", NameEs: "Piplup", Generation: 4, Types: []string{"water"},
		Stats: StarterStats{HP: 53, Atk: 51, Def: 53, SpA: 61, SpD: 56, Spe: 40},
		Description: "Un orgulloso Pokémon al que no le gusta aceptar comida de la gente.", HeightM: 0.4, WeightKg: 5.2},
	{PokemonID: 495, Name: "Snivy", NameEs: "Snivy", Generation: 5, Types: []string{"grass"},
		Stats: StarterStats{HP: 45, Atk: 45, Def: 55, SpA: 45, SpD: 55, Spe: 63},
		Description: "Fotosintetiza al exponer su cola al sol.", HeightM: 0.6, WeightKg: 8.1},
	{PokemonID: 498, Name: "Tepig", NameEs: "Tepig", Generation: 5, Types: []string{"fire"},
		Stats: StarterStats{HP: 65, Atk: 63, Def: 45, SpA: 45, SpD: 45, Spe: 45},
		Description: "Lanza bolas de fuego por la nariz y asa bayas antes de comerlas.", HeightM: 0.5, WeightKg: 9.9},
	{PokemonID: 501, Name: "Oshawott", NameEs: "Oshawott", Generation: 5, Types: []string{"water"},
		Stats: StarterStats{HP: 55, Atk: 55, Def: 45, SpA: 63, SpD: 45, Spe: 45},
		Description: "Combate con la vieira de su vientre.", HeightM: 0.5, WeightKg: 5.9},
	{PokemonID: 650, Name: "Chespin", NameEs: "Chespin", Generation: 6, Types: []string{"grass"},
		Stats: StarterStats{HP: 56, Atk: 61, Def: 65, SpA: 48, SpD: 45, Spe: 38},
		Description: "Las púas de su cabeza pueden atravesar rocas.", HeightM: 0.4, WeightKg: 9.0},
	{PokemonID: 653, Name: "Fennekin", NameEs: "Fennekin", Generation: 6, Types: []string{"fire"},
		Stats: StarterStats{HP: 40, Atk: 45, Def: 40, SpA: 62, SpD: 60, Spe: 60},
		Description: "Expulsa aire caliente por las orejas al masticar ramitas.", HeightM: 0.4, WeightKg: 9.4},
	{PokemonID: 656, Name: "Froakie", NameEs: "Froakie", Generation: 6, Types: []string{"water"},
		Stats: StarterStats{HP: 41, Atk: 56, Def: 40, SpA: 62, SpD: 44, Spe: 71},
		Description: "Protege su piel con una capa de burbujas elásticas.", HeightM: 0.3, WeightKg: 7.0},
	{PokemonID: 722, Name: "Rowlet", NameEs: "Rowlet", Generation: 7, Types: []string{"grass", "flying"},
		Stats: StarterStats{HP: 68, Atk: 55, Def: 55, SpA: 50, SpD: 50, Spe: 42},
		Description: "Almacena energía durante el día fotosintetizando y se activa de noche.", HeightM: 0.3, WeightKg: 1.5},
	{PokemonID: 725, Name: "Litten", NameEs: "Litten", Generation: 7, Types: []string{"fire"},
		Stats: StarterStats{HP: 45, Atk: 65, Def: 40, SpA: 60, SpD: 40, Spe: 70},
		Description: "Su pelaje acumula aceite inflamable que escupe en bolas de fuego.", HeightM: 0.4, WeightKg: 4.3},
	{PokemonID: 728, Name: "Popplio", NameEs: "Popplio", Generation: 7, Types: []string{"water"},
		Stats: StarterStats{HP: 50, Atk: 54, Def: 54, SpA: 66, SpD: 56, Spe: 40},
		Description: "Crea globos de agua con la nariz y los usa en su estrategia de combate.", HeightM: 0.4, WeightKg: 7.5},
	{PokemonID: 810, Name: "Grookey", NameEs: "Grookey", Generation: 8, Types: []string{"grass"},
		Stats: StarterStats{HP: 50, Atk: 65, Def: 50, SpA: 40, SpD: 40, Spe: 65},
		Description: "Su baqueta verde revitaliza las plantas marchitas al tocarlas.", HeightM: 0.3, WeightKg: 5.0},
	{PokemonID: 813, Name: "Scorbunny", NameEs: "Scorbunny", Generation: 8, Types: []string{"fire"},
		Stats: StarterStats{HP: 50, Atk: 71, Def: 40, SpA: 40, SpD: 40, Spe: 69},
		Description: "Corre sin parar para elevar su temperatura y potenciar su fuego.", HeightM: 0.3, WeightKg: 4.5},
	{PokemonID: 816, Name: "Sobble", NameEs: "Sobble", Generation: 8, Types: []string{"water"},
		Stats: StarterStats{HP: 50, Atk: 40, Def: 40, SpA: 70, SpD: 40, Spe: 70},
		Description: "Se camufla en el agua y llora para dispersar a sus enemigos.", HeightM: 0.3, WeightKg: 4.0},
	{PokemonID: 906, Name: "Sprigatito", NameEs: "Sprigatito", Generation: 9, Types: []string{"grass"},
		Stats: StarterStats{HP: 40, Atk: 61, Def: 54, SpA: 45, SpD: 45, Spe: 65},
		Description: "Su pelaje mullido fotosintetiza cuando está esponjado.", HeightM: 0.4, WeightKg: 4.1},
	{PokemonID: 909, Name: "Fuecoco", NameEs: "Fuecoco", Generation: 9, Types: []string{"fire"},
		Stats: StarterStats{HP: 67, Atk: 45, Def: 59, SpA: 63, SpD: 40, Spe: 36},
		Description: "Absorbe calor con las escamas cuadradas de su vientre.", HeightM: 0.4, WeightKg: 9.8},
	{PokemonID: 912, Name: "Quaxly", NameEs: "Quaxly", Generation: 9, Types: []string{"water"},
		Stats: StarterStats{HP: 55, Atk: 65, Def: 45, SpA: 50, SpD: 45, Spe: 50},
		Description: "Su copete repele el agua y siempre lo lleva impecable.", HeightM: 0.5, WeightKg: 6.1},
}
