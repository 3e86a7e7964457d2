// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package graph

// Schema is the GraphQL schema definition served at /graphql. Resolver
// methods on Resolver and the entity resolvers must stay in sync with it;
// parsing fails at startup otherwise.
const Schema = `
	scalar Time

	schema {
		query: Query
		mutation: Mutation
	}

	type Query {
		posts(limit: Int, offset: Int): [Post!]!
		post(id: ID, slug: String): Post
		users(limit: Int, offset: Int): [User!]!
		user(id: ID, username: String, email: String): User
		categories: [Category!]!
		category(id: Int, slug: String): Category
		tags: [Tag!]!
		tag(id: Int, slug: String): Tag
		comments(postId: ID!): [Comment!]!
		me: User
	}

	type Mutation {
		register(input: RegisterInput!): AuthPayload!
		login(email: String!, password: String!): AuthPayload!

		createPost(input: CreatePostInput!): Post!
		updatePost(input: UpdatePostInput!): Post!
		deletePost(id: ID!): Post!

		createUser(input: RegisterInput!): User!
		updateUser(input: UpdateUserInput!): User!
		deleteUser(id: ID!): User!

		createComment(postId: ID!, content: String!): Comment!
		updateComment(id: Int!, content: String!): Comment!
		deleteComment(id: Int!): Comment!

		createCategory(name: String!, slug: String): Category!
		updateCategory(id: Int!, name: String, slug: String): Category!
		deleteCategory(id: Int!): Category!

		createTag(name: String!, slug: String): Tag!
		deleteTag(id: Int!): Tag!

		likePost(id: ID!): Post!
		unlikePost(id: ID!): Post!
		likeComment(id: Int!): Comment!
		unlikeComment(id: Int!): Comment!

		addCategoryEditor(categoryId: Int!, userId: ID!): Category!
		removeCategoryEditor(categoryId: Int!, userId: ID!): Category!
	}

	type Post {
		id: ID!
		title: String!
		imgUrl: String
		slug: String!
		content: String!
		author: User
		category: Category
		tags: [Tag!]!
		likes: [User!]!
		comments: [Comment!]!
		createdAt: Time!
		updatedAt: Time!
		published: Boolean!
		deleted: Boolean!
	}

	type User {
		id: ID!
		name: String
		username: String!
		email: String!
		role: String!
		bio: String
		profileImg: String
		posts: [Post!]!
		comments: [Comment!]!
		editorOn: [Category!]!
		createdAt: Time!
		updatedAt: Time!
	}

	type Comment {
		id: Int!
		author: User
		post: Post
		content: String!
		likes: [User!]!
		createdAt: Time!
		updatedAt: Time!
		deleted: Boolean!
	}

	type Category {
		id: Int!
		name: String!
		slug: String!
		posts: [Post!]!
		editors: [User!]!
		createdAt: Time!
		updatedAt: Time!
	}

	type Tag {
		id: Int!
		name: String!
		slug: String!
		posts: [Post!]!
	}

	type AuthPayload {
		token: String!
	}

	input RegisterInput {
		username: String!
		email: String!
		password: String!
		name: String
		bio: String
		profileImg: String
	}

	input CreatePostInput {
		title: String!
		imgUrl: String
		content: String!
		categoryId: Int!
		tags: [Int!]
		published: Boolean
	}

	input UpdatePostInput {
		id: ID!
		title: String
		imgUrl: String
		content: String
		categoryId: Int
		authorId: ID
		tags: [Int!]
		published: Boolean
		deleted: Boolean
	}

	input UpdateUserInput {
		id: ID!
		name: String
		username: String
		email: String
		password: String
		bio: String
		profileImg: String
	}
`
